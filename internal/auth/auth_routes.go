package auth

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(rate.Limit(5), 10), handler.Login)
		authGroup.POST(
			"/register",
			middleware.AuthMiddleware(),
			rbac.Authorize(rbacService, "auth", "register"),
			handler.Register,
		)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.Me)
		authGroup.PATCH(
			"/users/:id/role",
			middleware.AuthMiddleware(),
			rbac.Authorize(rbacService, "employee", "update_role"),
			handler.UpdateRole,
		)
	}
}
