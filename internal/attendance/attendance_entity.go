package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCheckIn  Kind = "CHECK_IN"
	KindCheckOut Kind = "CHECK_OUT"
)

// Event is one raw check-in or check-out. Rows are written by the check-in
// feature and never changed afterwards.
type Event struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_attendance_events_employee_time"`
	OccurredAt time.Time `gorm:"column:occurred_at;type:timestamptz;not null;index:idx_attendance_events_employee_time"`
	Kind       Kind      `gorm:"column:kind;type:varchar(20);not null"`
	Source     string    `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Event) TableName() string {
	return "attendance_events"
}
