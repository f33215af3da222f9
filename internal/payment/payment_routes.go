package payment

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST(
			"/create-payment-intent",
			rbac.Authorize(rbacService, "payment", "intent"),
			handler.CreateIntent,
		)
	}
}
