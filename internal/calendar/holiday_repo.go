package calendar

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	FindBetween(ctx context.Context, start, end time.Time) ([]Holiday, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindBetween returns holidays with start <= date < end.
func (r *repository) FindBetween(ctx context.Context, start, end time.Time) ([]Holiday, error) {
	var rows []Holiday
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", start.Format(dateLayout), end.Format(dateLayout)).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}
