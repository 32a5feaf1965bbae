package payroll

import (
	"fmt"
	"net/http"

	"hris-payroll/internal/middleware"
	"hris-payroll/internal/shared/apperror"
	"hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func reportMeta(report Report) *response.ReportMeta {
	return &response.ReportMeta{
		Total:     report.Totals.Employees,
		Succeeded: report.Totals.Succeeded,
		Failed:    report.Totals.Failed,
	}
}

func (h *Handler) GetReport(c *gin.Context) {
	var req ReportQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	report, err := h.service.GetReport(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report, reportMeta(report))
}

func (h *Handler) ExportReport(c *gin.Context) {
	var req ReportQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	content, filename, err := h.service.ExportReport(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, content)
}

func (h *Handler) RequestReport(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	cacheKey := c.GetString("idempotency_cache_key")

	if h.rdb != nil && lockKey != "" {
		defer h.rdb.Del(c.Request.Context(), lockKey)
	}

	var req ReportQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.RequestReport(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if h.rdb != nil && cacheKey != "" {
		_ = middleware.StoreIdempotentResponse(c.Request.Context(), h.rdb, cacheKey, http.StatusAccepted, resp)
	}

	response.Success(c, http.StatusAccepted, resp, nil)
}
