package adjustment

import (
	"context"
	"fmt"
	"sort"
	"time"

	adjustmenterrors "hris-payroll/internal/adjustment/errors"
	"hris-payroll/internal/calendar"
	"hris-payroll/internal/shared/apperror"

	"github.com/google/uuid"
)

// Reader returns the adjustments attributed to one employee and month.
type Reader struct {
	source Source
	loc    *time.Location
}

func NewReader(source Source, loc *time.Location) *Reader {
	if loc == nil {
		loc = time.UTC
	}
	return &Reader{source: source, loc: loc}
}

// FetchAdjustments lists adjustments created within the month in the reader's
// location, ordered by creation time then ID.
func (r *Reader) FetchAdjustments(ctx context.Context, employeeID uuid.UUID, month, year int) ([]Adjustment, error) {
	if err := calendar.ValidatePeriod(month, year); err != nil {
		return nil, err
	}

	start, end := calendar.MonthBounds(year, time.Month(month), r.loc)
	rows, err := r.source.ListAdjustments(ctx, employeeID, start, end)
	if err != nil {
		if ctx.Err() == nil && !apperror.HasCode(err, apperror.CodeRetrievalFailure) {
			err = adjustmenterrors.ErrAdjustmentsUnavailable.WithCause(err)
		}
		return nil, fmt.Errorf("list adjustments for %s: %w", employeeID, err)
	}

	out := make([]Adjustment, 0, len(rows))
	for _, a := range rows {
		if a.CreatedAt.Before(start) || !a.CreatedAt.Before(end) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
