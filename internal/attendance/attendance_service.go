package attendance

import (
	"context"
	"time"

	attendanceerrors "hris-payroll/internal/attendance/errors"
	"hris-payroll/internal/calendar"
	calendarerrors "hris-payroll/internal/calendar/errors"
	"hris-payroll/internal/shared/apperror"

	"github.com/google/uuid"
)

type CalendarProvider interface {
	MonthCalendar(ctx context.Context, year int, month time.Month) (calendar.Calendar, error)
}

type Service interface {
	GetMonthlySummary(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryResponse, error)
}

type service struct {
	aggregator *Aggregator
	calendars  CalendarProvider
}

func NewService(aggregator *Aggregator, calendars CalendarProvider) Service {
	return &service{aggregator: aggregator, calendars: calendars}
}

func (s *service) GetMonthlySummary(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return MonthlySummaryResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	if err := calendar.ValidatePeriod(req.Month, req.Year); err != nil {
		return MonthlySummaryResponse{}, err
	}

	cal, err := s.calendars.MonthCalendar(ctx, req.Year, time.Month(req.Month))
	if err != nil {
		if !apperror.HasCode(err, apperror.CodeRetrievalFailure) {
			err = calendarerrors.ErrCalendarUnavailable.WithCause(err)
		}
		return MonthlySummaryResponse{}, err
	}

	stats, err := s.aggregator.Summarize(ctx, employeeID, req.Month, req.Year, cal)
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	return MonthlySummaryResponse{
		MonthlyStats:   stats,
		AttendanceRate: stats.AttendanceRate().String(),
	}, nil
}
