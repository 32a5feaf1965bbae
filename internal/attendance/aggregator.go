package attendance

import (
	"context"
	"fmt"
	"time"

	attendanceerrors "hris-payroll/internal/attendance/errors"
	"hris-payroll/internal/calendar"
	"hris-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// DayStatus is the derived classification of one workday.
type DayStatus struct {
	Date           string `json:"date"`
	CheckInStatus  Status `json:"check_in_status"`
	CheckOutStatus Status `json:"check_out_status"`
}

// MonthlyStats always satisfies PresentDays + AbsentDays == TotalWorkdays.
type MonthlyStats struct {
	EmployeeID      uuid.UUID       `json:"employee_id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	TotalWorkdays   int             `json:"total_workdays"`
	PresentDays     int             `json:"present_days"`
	LateCount       int             `json:"late_count"`
	EarlyLeaveCount int             `json:"early_leave_count"`
	AbsentDays      int             `json:"absent_days"`
	WorkUnits       decimal.Decimal `json:"work_units"`
	Days            []DayStatus     `json:"days,omitempty"`
}

// AttendanceRate is PresentDays / TotalWorkdays, zero for a month without workdays.
func (s MonthlyStats) AttendanceRate() decimal.Decimal {
	if s.TotalWorkdays == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.PresentDays)).
		Div(decimal.NewFromInt(int64(s.TotalWorkdays))).
		Round(4)
}

type Policy struct {
	Cutoffs  Cutoffs
	Location *time.Location
	// PartialDayPenalty is subtracted from the work units for every late
	// arrival and every early leave.
	PartialDayPenalty decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{Cutoffs: DefaultCutoffs(), Location: time.UTC}
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

type dayEvents struct {
	in  *Event
	out *Event
}

// earlier orders events by time, then by ID so equal timestamps resolve the same way every run.
func earlier(a, b *Event) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.Before(b.OccurredAt)
	}
	return a.ID.String() < b.ID.String()
}

// Aggregate summarizes one employee's month. Events of other employees, events
// outside the month and events on non-workdays are ignored. Per day the earliest
// check-in and the latest check-out are authoritative. events is not modified.
func Aggregate(
	employeeID uuid.UUID,
	month, year int,
	events []Event,
	cal calendar.Calendar,
	policy Policy,
) (MonthlyStats, error) {
	if err := calendar.ValidatePeriod(month, year); err != nil {
		return MonthlyStats{}, err
	}

	loc := policy.location()
	start, end := calendar.MonthBounds(year, time.Month(month), loc)

	byDay := make(map[string]*dayEvents)
	for i := range events {
		e := &events[i]
		if e.Kind != KindCheckIn && e.Kind != KindCheckOut {
			return MonthlyStats{}, attendanceerrors.ErrInvalidEventKind.WithCause(
				fmt.Errorf("event %s has kind %q", e.ID, e.Kind),
			)
		}
		if e.EmployeeID != employeeID {
			continue
		}

		local := e.OccurredAt.In(loc)
		if local.Before(start) || !local.Before(end) {
			continue
		}

		key := local.Format(dateLayout)
		d, ok := byDay[key]
		if !ok {
			d = &dayEvents{}
			byDay[key] = d
		}

		switch e.Kind {
		case KindCheckIn:
			if d.in == nil || earlier(e, d.in) {
				d.in = e
			}
		case KindCheckOut:
			if d.out == nil || earlier(d.out, e) {
				d.out = e
			}
		}
	}

	stats := MonthlyStats{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
		WorkUnits:  decimal.Zero,
	}

	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		if !cal.IsWorkday(day) {
			continue
		}
		stats.TotalWorkdays++

		key := day.Format(dateLayout)
		ds := DayStatus{Date: key, CheckInStatus: StatusAbsent, CheckOutStatus: StatusAbsent}

		d := byDay[key]
		if d == nil || d.in == nil {
			stats.AbsentDays++
			stats.Days = append(stats.Days, ds)
			continue
		}

		stats.PresentDays++
		status, err := Classify(d.in.OccurredAt.In(loc), KindCheckIn, policy.Cutoffs)
		if err != nil {
			return MonthlyStats{}, err
		}
		ds.CheckInStatus = status
		if status == StatusLate {
			stats.LateCount++
		}

		// A missing check-out is reported as absent but never counted as an early leave.
		if d.out != nil {
			status, err := Classify(d.out.OccurredAt.In(loc), KindCheckOut, policy.Cutoffs)
			if err != nil {
				return MonthlyStats{}, err
			}
			ds.CheckOutStatus = status
			if status == StatusEarly {
				stats.EarlyLeaveCount++
			}
		}

		stats.Days = append(stats.Days, ds)
	}

	occurrences := decimal.NewFromInt(int64(stats.LateCount + stats.EarlyLeaveCount))
	units := decimal.NewFromInt(int64(stats.PresentDays)).Sub(policy.PartialDayPenalty.Mul(occurrences))
	if units.IsNegative() {
		units = decimal.Zero
	}
	stats.WorkUnits = units

	return stats, nil
}

// EventSource is the attendance subsystem's read contract.
type EventSource interface {
	ListAttendanceEvents(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]Event, error)
}

// Aggregator fetches an employee's events for a month and aggregates them.
type Aggregator struct {
	source EventSource
	policy Policy
}

func NewAggregator(source EventSource, policy Policy) *Aggregator {
	return &Aggregator{source: source, policy: policy}
}

func (a *Aggregator) Summarize(
	ctx context.Context,
	employeeID uuid.UUID,
	month, year int,
	cal calendar.Calendar,
) (MonthlyStats, error) {
	if err := calendar.ValidatePeriod(month, year); err != nil {
		return MonthlyStats{}, err
	}

	start, end := calendar.MonthBounds(year, time.Month(month), a.policy.location())
	events, err := a.source.ListAttendanceEvents(ctx, employeeID, start, end)
	if err != nil {
		if ctx.Err() == nil && !apperror.HasCode(err, apperror.CodeRetrievalFailure) {
			err = attendanceerrors.ErrEventsUnavailable.WithCause(err)
		}
		return MonthlyStats{}, fmt.Errorf("list attendance events for %s: %w", employeeID, err)
	}

	return Aggregate(employeeID, month, year, events, cal, a.policy)
}
