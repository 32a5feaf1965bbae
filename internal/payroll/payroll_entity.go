package payroll

import (
	"time"

	"hris-payroll/internal/adjustment"
	"hris-payroll/internal/attendance"
	"hris-payroll/internal/shared/apperror"

	"github.com/google/uuid"
)

type RecordStatus string

const (
	StatusOK     RecordStatus = "OK"
	StatusFailed RecordStatus = "FAILED"
)

// Record is one employee's row of a payroll run. A FAILED record carries the
// failure code and reason instead of amounts.
type Record struct {
	EmployeeID      uuid.UUID                `json:"employee_id"`
	EmployeeName    string                   `json:"employee_name"`
	Email           string                   `json:"email"`
	Stats           *attendance.MonthlyStats `json:"stats,omitempty"`
	Adjustments     []adjustment.Adjustment  `json:"adjustments"`
	BaseAmount      int64                    `json:"base_amount"`
	AdjustmentTotal int64                    `json:"adjustment_total"`
	FinalAmount     int64                    `json:"final_amount"`
	Status          RecordStatus             `json:"status"`
	FailureCode     string                   `json:"failure_code,omitempty"`
	FailureReason   string                   `json:"failure_reason,omitempty"`
}

func (r Record) Failed() bool {
	return r.Status == StatusFailed
}

func failedRecord(rec Record, err error) Record {
	rec.Status = StatusFailed
	rec.FailureCode = apperror.CodeOf(err)
	rec.FailureReason = err.Error()
	rec.BaseAmount = 0
	rec.AdjustmentTotal = 0
	rec.FinalAmount = 0
	return rec
}

// Totals sums amounts over succeeded records only.
type Totals struct {
	Employees       int   `json:"employees"`
	Succeeded       int   `json:"succeeded"`
	Failed          int   `json:"failed"`
	BaseAmount      int64 `json:"base_amount"`
	AdjustmentTotal int64 `json:"adjustment_total"`
	FinalAmount     int64 `json:"final_amount"`
}

type Report struct {
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	GeneratedAt time.Time `json:"generated_at"`
	Records     []Record  `json:"records"`
	Totals      Totals    `json:"totals"`
}

func NewReport(month, year int, records []Record, generatedAt time.Time) Report {
	totals := Totals{Employees: len(records)}
	for _, r := range records {
		if r.Failed() {
			totals.Failed++
			continue
		}
		totals.Succeeded++
		totals.BaseAmount += r.BaseAmount
		totals.AdjustmentTotal += r.AdjustmentTotal
		totals.FinalAmount += r.FinalAmount
	}
	if records == nil {
		records = []Record{}
	}
	return Report{
		Month:       month,
		Year:        year,
		GeneratedAt: generatedAt,
		Records:     records,
		Totals:      totals,
	}
}
