package adjustment

import (
	"time"

	"github.com/google/uuid"
)

// Adjustment is a manual bonus (positive) or deduction (negative) in the
// smallest currency unit. It belongs to the month containing CreatedAt.
type Adjustment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmployeeID uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index:idx_payroll_adjustments_employee_created" json:"employee_id"`
	Amount     int64     `gorm:"column:amount;not null" json:"amount"`
	Reason     string    `gorm:"column:reason;type:text" json:"reason"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;not null;index:idx_payroll_adjustments_employee_created" json:"created_at"`
}

func (Adjustment) TableName() string {
	return "payroll_adjustments"
}

// Sum adds up the amounts; an empty list sums to zero.
func Sum(adjustments []Adjustment) int64 {
	var total int64
	for _, a := range adjustments {
		total += a.Amount
	}
	return total
}
