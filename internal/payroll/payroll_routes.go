package payroll

import (
	"hris-payroll/internal/middleware"
	"hris-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type RouteConfig struct {
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
	Redis          *redis.Client
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	cfg RouteConfig,
) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	)
	{
		payrolls.GET(
			"/report",
			middleware.RBACAuthorize(rbacService, rbac.CapPayrollRead),
			handler.GetReport,
		)
		payrolls.GET(
			"/report/export",
			middleware.RBACAuthorize(rbacService, rbac.CapPayrollExport),
			handler.ExportReport,
		)

		requestHandlers := []gin.HandlerFunc{middleware.RBACAuthorize(rbacService, rbac.CapPayrollExport)}
		if cfg.Redis != nil {
			requestHandlers = append(requestHandlers, middleware.Idempotency(cfg.Redis))
		}
		requestHandlers = append(requestHandlers, handler.RequestReport)
		payrolls.POST("/report/requests", requestHandlers...)
	}
}
