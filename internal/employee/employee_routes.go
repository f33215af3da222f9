package employee

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", rbac.Authorize(rbacService, "employee", "read"), handler.GetAll)
		employees.GET("/options", rbac.Authorize(rbacService, "employee", "read"), handler.GetOptions)
		employees.GET("/:id", rbac.Authorize(rbacService, "employee", "read"), handler.GetById)
		employees.POST("", rbac.Authorize(rbacService, "employee", "create"), handler.Create)
		employees.PUT("/:id", rbac.Authorize(rbacService, "employee", "update"), handler.Update)
		employees.PATCH("/:id/salary", rbac.Authorize(rbacService, "employee", "update"), handler.UpdateSalary)
		employees.PATCH("/:id/verify", rbac.Authorize(rbacService, "employee", "verify"), handler.ToggleVerified)
		employees.POST("/:id/terminate", rbac.Authorize(rbacService, "employee", "terminate"), handler.Terminate)
	}
}
