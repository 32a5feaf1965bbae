package calendar

import (
	"time"
)

const dateLayout = "2006-01-02"

// Calendar answers whether a date requires attendance. Only the year, month and
// day of date (in its own location) are considered.
type Calendar interface {
	IsWorkday(date time.Time) bool
}

// WorkWeek is a weekend set plus a list of holidays.
type WorkWeek struct {
	weekend  map[time.Weekday]struct{}
	holidays map[string]string
}

func NewWorkWeek(weekend []time.Weekday, holidays []Holiday) *WorkWeek {
	w := &WorkWeek{
		weekend:  make(map[time.Weekday]struct{}, len(weekend)),
		holidays: make(map[string]string, len(holidays)),
	}
	for _, d := range weekend {
		w.weekend[d] = struct{}{}
	}
	for _, h := range holidays {
		w.holidays[h.Date.Format(dateLayout)] = h.Name
	}
	return w
}

func (w *WorkWeek) IsWorkday(date time.Time) bool {
	if _, ok := w.weekend[date.Weekday()]; ok {
		return false
	}
	_, holiday := w.holidays[date.Format(dateLayout)]
	return !holiday
}

// Func adapts a plain function to Calendar.
type Func func(date time.Time) bool

func (f Func) IsWorkday(date time.Time) bool { return f(date) }

// MonthBounds returns [first day of month, first day of next month) in loc.
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// Workdays lists the workdays of a month in calendar order.
func Workdays(cal Calendar, year int, month time.Month, loc *time.Location) []time.Time {
	start, end := MonthBounds(year, month, loc)
	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if cal.IsWorkday(d) {
			days = append(days, d)
		}
	}
	return days
}
