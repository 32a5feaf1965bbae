package rbac

import (
	"net/http"
	"strings"

	"hris-payroll/internal/domain"
	"hris-payroll/internal/shared/apperror"
	"hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Enforce(c *gin.Context) {
	var req domain.EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	req.Role = strings.TrimSpace(req.Role)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	allowed, err := h.service.Enforce(req)
	if err != nil {
		response.FromError(c, apperror.ErrInternal.WithCause(err))
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

// MyCapabilities lists the capabilities of the caller's role.
func (h *Handler) MyCapabilities(c *gin.Context) {
	caps, err := h.service.Capabilities(c.GetString("role"))
	if err != nil {
		response.FromError(c, apperror.ErrInternal.WithCause(err))
		return
	}

	response.Success(c, http.StatusOK, caps, nil)
}
