package attendance

import (
	"fmt"
	"time"

	attendanceerrors "hris-payroll/internal/attendance/errors"
)

type Status string

const (
	StatusOnTime Status = "ON_TIME"
	StatusLate   Status = "LATE"
	StatusEarly  Status = "EARLY"
	StatusAbsent Status = "ABSENT"
)

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

func ParseClock(v string) (Clock, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return Clock{}, attendanceerrors.ErrInvalidCutoff.WithCause(err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

type Cutoffs struct {
	CheckIn  Clock
	CheckOut Clock
}

func DefaultCutoffs() Cutoffs {
	return Cutoffs{
		CheckIn:  Clock{Hour: 8, Minute: 30},
		CheckOut: Clock{Hour: 17, Minute: 30},
	}
}

// Classify labels one event against the cutoffs. ts must already be in the
// workplace location. Seconds are ignored, and a time equal to the cutoff is on time.
func Classify(ts time.Time, kind Kind, cutoffs Cutoffs) (Status, error) {
	m := ts.Hour()*60 + ts.Minute()

	switch kind {
	case KindCheckIn:
		if m > cutoffs.CheckIn.minutes() {
			return StatusLate, nil
		}
		return StatusOnTime, nil
	case KindCheckOut:
		if m < cutoffs.CheckOut.minutes() {
			return StatusEarly, nil
		}
		return StatusOnTime, nil
	default:
		return "", attendanceerrors.ErrInvalidEventKind.WithCause(fmt.Errorf("kind %q", kind))
	}
}
