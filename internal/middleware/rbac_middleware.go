package middleware

import (
	"net/http"

	"hris-payroll/internal/domain"
	middlewareerrors "hris-payroll/internal/middleware/errors"
	"hris-payroll/internal/shared/apperror"
	"hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by anything that can answer an EnforceRequest.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, capability domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.FromError(c, middlewareerrors.ErrMissingAuthContext)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			UserID:   userID,
			Role:     c.GetString("role"),
			Resource: capability.Resource,
			Action:   capability.Action,
		})
		if err != nil {
			response.FromError(c, apperror.ErrInternal.WithCause(err))
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message,
				gin.H{"required": capability.String()})
			c.Abort()
			return
		}
		c.Next()
	}
}
