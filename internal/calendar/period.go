package calendar

import (
	calendarerrors "hris-payroll/internal/calendar/errors"
)

// ValidatePeriod rejects months outside 1..12 and years outside 1..9999.
func ValidatePeriod(month, year int) error {
	if month < 1 || month > 12 {
		return calendarerrors.ErrInvalidMonth
	}
	if year < 1 || year > 9999 {
		return calendarerrors.ErrInvalidYear
	}
	return nil
}
