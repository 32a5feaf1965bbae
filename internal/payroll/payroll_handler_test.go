package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hris-payroll/internal/payroll"
	payrollerrors "hris-payroll/internal/payroll/errors"
	"hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakePayrollService struct {
	GetReportFn     func(ctx context.Context, req payroll.ReportQuery) (payroll.Report, error)
	ExportReportFn  func(ctx context.Context, req payroll.ReportQuery) ([]byte, string, error)
	RequestReportFn func(ctx context.Context, actorID string, req payroll.ReportQuery) (payroll.ReportRequestAccepted, error)
}

func (f *fakePayrollService) GetReport(ctx context.Context, req payroll.ReportQuery) (payroll.Report, error) {
	return f.GetReportFn(ctx, req)
}

func (f *fakePayrollService) ExportReport(ctx context.Context, req payroll.ReportQuery) ([]byte, string, error) {
	return f.ExportReportFn(ctx, req)
}

func (f *fakePayrollService) RequestReport(ctx context.Context, actorID string, req payroll.ReportQuery) (payroll.ReportRequestAccepted, error) {
	return f.RequestReportFn(ctx, actorID, req)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, w
}

func TestHandler_GetReport(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakePayrollService{GetReportFn: func(ctx context.Context, req payroll.ReportQuery) (payroll.Report, error) {
			assert.Equal(t, payroll.ReportQuery{Month: 2, Year: 2026}, req)
			return sampleReport(), nil
		}}
		c, w := newTestContext(http.MethodGet, "/api/v1/payrolls/report?month=2&year=2026", "")

		payroll.NewHandler(svc).GetReport(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var body response.ApiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.Equal(t, &response.ReportMeta{Total: 2, Succeeded: 1, Failed: 1}, body.Meta)
		assert.Contains(t, w.Body.String(), `"status":"FAILED"`)
	})

	t.Run("missing year", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/api/v1/payrolls/report?month=2", "")

		payroll.NewHandler(&fakePayrollService{}).GetReport(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Year is required")
	})

	t.Run("cancelled", func(t *testing.T) {
		svc := &fakePayrollService{GetReportFn: func(ctx context.Context, req payroll.ReportQuery) (payroll.Report, error) {
			return payroll.Report{}, payrollerrors.ErrCancelled.WithCause(context.Canceled)
		}}
		c, w := newTestContext(http.MethodGet, "/api/v1/payrolls/report?month=2&year=2026", "")

		payroll.NewHandler(svc).GetReport(c)

		assert.Equal(t, 499, w.Code)
		assert.Contains(t, w.Body.String(), "CANCELLED")
	})
}

func TestHandler_ExportReport(t *testing.T) {
	svc := &fakePayrollService{ExportReportFn: func(ctx context.Context, req payroll.ReportQuery) ([]byte, string, error) {
		return []byte("PK-xlsx"), "payroll-2026-02.xlsx", nil
	}}
	c, w := newTestContext(http.MethodGet, "/api/v1/payrolls/report/export?month=2&year=2026", "")

	payroll.NewHandler(svc).ExportReport(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="payroll-2026-02.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Equal(t, "PK-xlsx", w.Body.String())
}

func TestHandler_RequestReport(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		svc := &fakePayrollService{RequestReportFn: func(ctx context.Context, actorID string, req payroll.ReportQuery) (payroll.ReportRequestAccepted, error) {
			assert.Equal(t, "u-1", actorID)
			return payroll.ReportRequestAccepted{RequestID: "r-1", Month: req.Month, Year: req.Year, Status: payroll.ReportRequestQueued}, nil
		}}
		c, w := newTestContext(http.MethodPost, "/api/v1/payrolls/report/requests", `{"month":2,"year":2026}`)
		c.Set("user_id", "u-1")

		payroll.NewHandler(svc).RequestReport(c)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"request_id":"r-1"`)
	})

	t.Run("invalid body", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/api/v1/payrolls/report/requests", `{"month":0,"year":2026}`)

		payroll.NewHandler(&fakePayrollService{}).RequestReport(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
