package payroll

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	payrolls := r.Group("/payroll")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", rbac.Authorize(rbacService, "payroll", "read"), handler.GetAll)
		payrolls.GET("/:id", rbac.Authorize(rbacService, "payroll", "read"), handler.GetById)
		if redisClient != nil {
			payrolls.POST(
				"/request",
				middleware.Idempotency(redisClient),
				rbac.Authorize(rbacService, "payroll", "create"),
				handler.Create,
			)
		} else {
			payrolls.POST("/request", rbac.Authorize(rbacService, "payroll", "create"), handler.Create)
		}
		payrolls.POST(
			"/:id/approve",
			middleware.RateLimitByUser(rate.Limit(2), 5),
			rbac.Authorize(rbacService, "payroll", "approve"),
			handler.Approve,
		)
		payrolls.POST("/:id/reject", rbac.Authorize(rbacService, "payroll", "reject"), handler.Reject)
	}

	// Riwayat per karyawan; guard "hanya milik sendiri" ada di service.
	history := r.Group("/payments")
	history.Use(middleware.AuthMiddleware())
	{
		history.GET("/:email", rbac.Authorize(rbacService, "payroll", "read_own"), handler.History)
	}
}
