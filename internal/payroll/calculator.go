package payroll

import (
	"context"
	"fmt"
	"time"

	"hris-payroll/internal/adjustment"
	"hris-payroll/internal/attendance"
	"hris-payroll/internal/calendar"
	calendarerrors "hris-payroll/internal/calendar/errors"
	"hris-payroll/internal/employee"
	payrollerrors "hris-payroll/internal/payroll/errors"
	"hris-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 8

type RosterSource interface {
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
}

type CalendarProvider interface {
	MonthCalendar(ctx context.Context, year int, month time.Month) (calendar.Calendar, error)
}

type AttendanceSummarizer interface {
	Summarize(ctx context.Context, employeeID uuid.UUID, month, year int, cal calendar.Calendar) (attendance.MonthlyStats, error)
}

type AdjustmentFetcher interface {
	FetchAdjustments(ctx context.Context, employeeID uuid.UUID, month, year int) ([]adjustment.Adjustment, error)
}

// Calculator produces one Record per roster employee for a month. Employees are
// processed concurrently on a bounded pool; results keep roster order.
type Calculator struct {
	roster      RosterSource
	calendars   CalendarProvider
	attendance  AttendanceSummarizer
	adjustments AdjustmentFetcher
	policy      RatePolicy
	workers     int
	logger      *zap.Logger
	now         func() time.Time
}

func NewCalculator(
	roster RosterSource,
	calendars CalendarProvider,
	attendance AttendanceSummarizer,
	adjustments AdjustmentFetcher,
	policy RatePolicy,
	workers int,
	logger *zap.Logger,
) *Calculator {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		roster:      roster,
		calendars:   calendars,
		attendance:  attendance,
		adjustments: adjustments,
		policy:      policy,
		workers:     workers,
		logger:      logger.Named("payroll.calculator"),
		now:         time.Now,
	}
}

// CalculatePayroll fails the whole batch only for an invalid period, a missing
// roster, a missing calendar or cancellation. Every other failure is confined to
// the affected employee's record.
func (c *Calculator) CalculatePayroll(ctx context.Context, month, year int) ([]Record, error) {
	if err := calendar.ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, payrollerrors.ErrCancelled.WithCause(err)
	}

	started := c.now()
	log := c.logger.With(zap.Int("month", month), zap.Int("year", year))

	roster, err := c.roster.ListEmployees(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, payrollerrors.ErrCancelled.WithCause(ctx.Err())
		}
		if !apperror.HasCode(err, apperror.CodeRetrievalFailure) {
			err = payrollerrors.ErrRosterUnavailable.WithCause(err)
		}
		log.Error("load roster failed", zap.Error(err))
		return nil, fmt.Errorf("load roster: %w", err)
	}

	cal, err := c.calendars.MonthCalendar(ctx, year, time.Month(month))
	if err != nil {
		if ctx.Err() != nil {
			return nil, payrollerrors.ErrCancelled.WithCause(ctx.Err())
		}
		if !apperror.HasCode(err, apperror.CodeRetrievalFailure) {
			err = calendarerrors.ErrCalendarUnavailable.WithCause(err)
		}
		log.Error("load calendar failed", zap.Error(err))
		return nil, fmt.Errorf("load calendar: %w", err)
	}

	log.Info("payroll batch started", zap.Int("employees", len(roster)), zap.Int("workers", c.workers))

	records := make([]Record, len(roster))
	done := make(chan struct{})

	go func() {
		defer close(done)
		var g errgroup.Group
		g.SetLimit(c.workers)
		for i, emp := range roster {
			if ctx.Err() != nil {
				break
			}
			i, emp := i, emp
			g.Go(func() error {
				records[i] = c.calculateOne(ctx, emp, month, year, cal)
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-ctx.Done():
		log.Warn("payroll batch cancelled", zap.Error(ctx.Err()))
		return nil, payrollerrors.ErrCancelled.WithCause(ctx.Err())
	case <-done:
	}
	if err := ctx.Err(); err != nil {
		return nil, payrollerrors.ErrCancelled.WithCause(err)
	}

	failed := 0
	for _, r := range records {
		if r.Failed() {
			failed++
		}
	}
	log.Info("payroll batch finished",
		zap.Int("employees", len(records)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", c.now().Sub(started)),
	)

	return records, nil
}

// BuildReport runs CalculatePayroll and adds totals.
func (c *Calculator) BuildReport(ctx context.Context, month, year int) (Report, error) {
	records, err := c.CalculatePayroll(ctx, month, year)
	if err != nil {
		return Report{}, err
	}
	return NewReport(month, year, records, c.now().UTC()), nil
}

func (c *Calculator) calculateOne(
	ctx context.Context,
	emp employee.Employee,
	month, year int,
	cal calendar.Calendar,
) (rec Record) {
	rec = Record{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Email:        emp.Email,
		Adjustments:  []adjustment.Adjustment{},
	}

	defer func() {
		if p := recover(); p != nil {
			rec = c.fail(rec, apperror.ErrInternal.WithCause(fmt.Errorf("panic: %v", p)))
		}
	}()

	stats, err := c.attendance.Summarize(ctx, emp.ID, month, year, cal)
	if err != nil {
		return c.fail(rec, err)
	}
	rec.Stats = &stats

	adjustments, err := c.adjustments.FetchAdjustments(ctx, emp.ID, month, year)
	if err != nil {
		return c.fail(rec, err)
	}

	rec.Adjustments = adjustments
	rec.BaseAmount = c.policy.BaseAmount(stats.WorkUnits)
	rec.AdjustmentTotal = adjustment.Sum(adjustments)
	rec.FinalAmount = rec.BaseAmount + rec.AdjustmentTotal
	rec.Status = StatusOK
	return rec
}

func (c *Calculator) fail(rec Record, err error) Record {
	rec = failedRecord(rec, err)
	c.logger.Warn("employee payroll failed",
		zap.String("employee_id", rec.EmployeeID.String()),
		zap.String("code", rec.FailureCode),
		zap.Error(err),
	)
	return rec
}
