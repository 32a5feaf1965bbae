package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hris-payroll/internal/attendance"
	attendanceerrors "hris-payroll/internal/attendance/errors"
	"hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeAttendanceService struct {
	GetMonthlySummaryFn func(ctx context.Context, req attendance.MonthlySummaryRequest) (attendance.MonthlySummaryResponse, error)
}

func (f *fakeAttendanceService) GetMonthlySummary(ctx context.Context, req attendance.MonthlySummaryRequest) (attendance.MonthlySummaryResponse, error) {
	return f.GetMonthlySummaryFn(ctx, req)
}

func serveSummary(h *attendance.Handler, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	h.GetMonthlySummary(c)
	return w
}

func TestHandler_GetMonthlySummary(t *testing.T) {
	emp := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &fakeAttendanceService{
			GetMonthlySummaryFn: func(ctx context.Context, req attendance.MonthlySummaryRequest) (attendance.MonthlySummaryResponse, error) {
				assert.Equal(t, emp.String(), req.EmployeeID)
				assert.Equal(t, 2, req.Month)
				assert.Equal(t, 2026, req.Year)
				return attendance.MonthlySummaryResponse{
					MonthlyStats: attendance.MonthlyStats{
						EmployeeID: emp, Month: 2, Year: 2026,
						TotalWorkdays: 20, PresentDays: 18, AbsentDays: 2,
						WorkUnits: decimal.NewFromInt(18),
					},
					AttendanceRate: "0.9",
				}, nil
			},
		}

		w := serveSummary(attendance.NewHandler(svc), "/api/v1/attendances/summary?employee_id="+emp.String()+"&month=2&year=2026")

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Ok   bool `json:"ok"`
			Data struct {
				PresentDays    int    `json:"present_days"`
				AbsentDays     int    `json:"absent_days"`
				WorkUnits      string `json:"work_units"`
				AttendanceRate string `json:"attendance_rate"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.Equal(t, 18, body.Data.PresentDays)
		assert.Equal(t, 2, body.Data.AbsentDays)
		assert.Equal(t, "18", body.Data.WorkUnits)
		assert.Equal(t, "0.9", body.Data.AttendanceRate)
	})

	t.Run("month out of range", func(t *testing.T) {
		h := attendance.NewHandler(&fakeAttendanceService{})

		w := serveSummary(h, "/api/v1/attendances/summary?employee_id="+emp.String()+"&month=13&year=2026")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("events unavailable", func(t *testing.T) {
		svc := &fakeAttendanceService{
			GetMonthlySummaryFn: func(ctx context.Context, req attendance.MonthlySummaryRequest) (attendance.MonthlySummaryResponse, error) {
				return attendance.MonthlySummaryResponse{}, attendanceerrors.ErrEventsUnavailable
			},
		}

		w := serveSummary(attendance.NewHandler(svc), "/api/v1/attendances/summary?employee_id="+emp.String()+"&month=2&year=2026")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body response.ApiEnvelope
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Ok)
		assert.Contains(t, w.Body.String(), "RETRIEVAL_FAILURE")
	})
}
