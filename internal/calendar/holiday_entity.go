package calendar

import (
	"time"

	"github.com/google/uuid"
)

type Holiday struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"-"`
	Date      time.Time `gorm:"column:date;type:date;not null;uniqueIndex" json:"date"`
	Name      string    `gorm:"column:name;type:varchar(120);not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
}

func (Holiday) TableName() string {
	return "holidays"
}
