package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	attendanceerrors "hris-payroll/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository interface {
	EventSource
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListAttendanceEvents returns the employee's events with start <= occurred_at < end.
func (r *repository) ListAttendanceEvents(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]Event, error) {
	var rows []Event
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("occurred_at >= ? AND occurred_at < ?", start, end).
		Order("occurred_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rows, nil
}

// mapRepositoryError marks store failures as retrieval failures. Context
// errors pass through so callers can tell cancellation apart.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return attendanceerrors.ErrEventsUnavailable.WithCause(fmt.Errorf("sqlstate %s: %w", pgErr.Code, err))
	}

	return attendanceerrors.ErrEventsUnavailable.WithCause(err)
}
