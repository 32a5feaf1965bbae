package employee

import (
	"context"
	"errors"
	"fmt"

	employeeerrors "hris-payroll/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListEmployees returns the active roster in a stable order.
func (r *repository) ListEmployees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("full_name ASC, id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return employees, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return employeeerrors.ErrRosterUnavailable.WithCause(fmt.Errorf("sqlstate %s: %w", pgErr.Code, err))
	}
	return employeeerrors.ErrRosterUnavailable.WithCause(err)
}
