package adjustment

import (
	"context"
	"errors"
	"fmt"
	"time"

	adjustmenterrors "hris-payroll/internal/adjustment/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Source is the ledger's read contract.
type Source interface {
	ListAdjustments(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]Adjustment, error)
}

type Repository interface {
	Source
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListAdjustments(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]Adjustment, error) {
	var rows []Adjustment
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rows, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return adjustmenterrors.ErrAdjustmentsUnavailable.WithCause(fmt.Errorf("connect: %w", err))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return adjustmenterrors.ErrAdjustmentsUnavailable.WithCause(fmt.Errorf("sqlstate %s: %w", pgErr.Code, err))
	}
	return adjustmenterrors.ErrAdjustmentsUnavailable.WithCause(err)
}
