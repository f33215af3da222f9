package worklog

import (
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	worklogs := r.Group("/work-logs")
	worklogs.Use(middleware.AuthMiddleware())
	{
		worklogs.POST("", rbac.Authorize(rbacService, "worklog", "create"), handler.Create)
		worklogs.GET("/:employeeId", rbac.Authorize(rbacService, "worklog", "read_own"), handler.GetByEmployee)
	}
}
