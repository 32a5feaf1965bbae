package adjustment_test

import (
	"context"
	"testing"
	"time"

	"hris-payroll/internal/adjustment"
	adjustmenterrors "hris-payroll/internal/adjustment/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRepository_ListAdjustments(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	emp := uuid.New()
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	repo := adjustment.NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "payroll_adjustments" WHERE employee_id = \$1 AND \(created_at >= \$2 AND created_at < \$3\) ORDER BY created_at ASC, id ASC`).
		WithArgs(sqlmock.AnyArg(), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "amount", "reason", "created_at"}).
			AddRow(uuid.New().String(), emp.String(), int64(-50000), "late fee", start.Add(48*time.Hour)))

	rows, err := repo.ListAdjustments(context.Background(), emp, start, end)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(-50000), rows[0].Amount)

	mock.ExpectQuery(`SELECT \* FROM "payroll_adjustments"`).
		WillReturnError(&pgconn.PgError{Code: "08006", Message: "connection failure"})

	_, err = repo.ListAdjustments(context.Background(), emp, start, end)
	assert.ErrorIs(t, err, adjustmenterrors.ErrAdjustmentsUnavailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}
