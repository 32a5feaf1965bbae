package attendance

import (
	"hris-payroll/internal/middleware"
	"hris-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	jwtSecret string,
) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware(jwtSecret))
	{
		attendances.GET(
			"/summary",
			middleware.RBACAuthorize(rbacService, rbac.CapAttendanceRead),
			handler.GetMonthlySummary,
		)
	}
}
