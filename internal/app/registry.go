package app

import (
	"database/sql"
	"os"

	"go-ems/internal/auth"
	"go-ems/internal/employee"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/payment"
	"go-ems/internal/payroll"
	"go-ems/internal/rbac"
	"go-ems/internal/worklog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	worklogRepo := worklog.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Payment Gateway ---
	currency := os.Getenv("CURRENCY")
	if currency == "" {
		currency = "usd"
	}
	gateway := payment.NewStripeGateway(os.Getenv("STRIPE_SECRET_KEY"), currency)

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := employee.NewService(employeeRepo, rdb)
	payrollService := payroll.NewService(db, payrollRepo, employeeRepo, outboxRepo, gateway, rdb)
	worklogService := worklog.NewService(worklogRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	paymentHandler := payment.NewHandler(gateway)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	worklogHandler := worklog.NewHandler(worklogService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		payment.RegisterRoutes(api, paymentHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		worklog.RegisterRoutes(api, worklogHandler, rbacService)
	}

	return nil
}
