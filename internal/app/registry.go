package app

import (
	"database/sql"
	"net/http"

	"hris-payroll/internal/attendance"
	"hris-payroll/internal/config"
	"hris-payroll/internal/messaging/kafka"
	"hris-payroll/internal/payroll"
	"hris-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	rdb *redis.Client,
	engine *Engine,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer(rbac.DefaultGrants(), rbac.DefaultInheritance())
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	attendanceService := attendance.NewService(engine.Aggregator, engine.Calendars)
	payrollService := payroll.NewService(engine.Calculator, db, outboxRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, cfg.JWTSecret)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, payroll.RouteConfig{
			JWTSecret:      cfg.JWTSecret,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateBurst,
			Redis:          rdb,
		})
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret)
	}

	return nil
}
