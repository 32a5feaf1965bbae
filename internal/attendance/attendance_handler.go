package attendance

import (
	"net/http"

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

func (h *Handler) GetMonthlySummary(c *gin.Context) {
	var req MonthlySummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetMonthlySummary(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
