package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hris-payroll/internal/shared/resilience"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestDo_RetriesUntilSuccess(t *testing.T) {
	p := resilience.NewPolicy("events", 3, time.Millisecond, nil)
	calls := 0

	got, err := resilience.Do(context.Background(), p, func(ctx context.Context) ([]int, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("connection reset")
		}
		return []int{1, 2}, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, 3, calls)
}

func TestDo_ReturnsLastErrorWhenExhausted(t *testing.T) {
	p := resilience.NewPolicy("ledger", 2, time.Millisecond, nil)
	errDown := errors.New("store down")
	calls := 0

	_, err := resilience.Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		return 0, errDown
	})

	assert.ErrorIs(t, err, errDown)
	assert.Equal(t, 2, calls)
}

func TestDo_StopsOnNonRetryable(t *testing.T) {
	p := resilience.NewPolicy("roster", 5, time.Millisecond, nil)
	errBad := errors.New("bad request")
	p.Retryable = func(err error) bool { return !errors.Is(err, errBad) }
	calls := 0

	_, err := resilience.Do(context.Background(), p, func(ctx context.Context) (int, error) {
		calls++
		return 0, errBad
	})

	assert.ErrorIs(t, err, errBad)
	assert.Equal(t, 1, calls)
}

func TestDo_HonoursCancellation(t *testing.T) {
	p := resilience.NewPolicy("events", 5, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := resilience.Do(ctx, p, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("timeout")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_BreakerOpens(t *testing.T) {
	p := resilience.NewPolicy("events", 1, 0, nil)
	for i := 0; i < 10; i++ {
		_, _ = resilience.Do(context.Background(), p, func(ctx context.Context) (int, error) {
			return 0, errors.New("down")
		})
	}

	assert.Equal(t, gobreaker.StateOpen, p.State())

	_, err := resilience.Do(context.Background(), p, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	assert.Equal(t, 100*time.Millisecond, resilience.Backoff(base, 1))
	assert.Equal(t, 200*time.Millisecond, resilience.Backoff(base, 2))
	assert.Equal(t, 400*time.Millisecond, resilience.Backoff(base, 3))
	assert.Equal(t, 5*time.Second, resilience.Backoff(base, 20))
	assert.Equal(t, time.Duration(0), resilience.Backoff(0, 3))
}

func TestDo_CountsOneOutcomePerCall(t *testing.T) {
	p := resilience.NewPolicy("ledger", 3, 0, nil)
	calls := 0

	for i := 0; i < 9; i++ {
		_, _ = resilience.Do(context.Background(), p, func(ctx context.Context) (int, error) {
			calls++
			return 0, errors.New("down")
		})
	}

	assert.Equal(t, 27, calls)
	assert.Equal(t, gobreaker.StateClosed, p.State())
}

func TestDo_IgnoresFailuresThatDoNotTrip(t *testing.T) {
	errRow := errors.New("lock timeout")
	p := resilience.NewPolicy("ledger", 1, 0, nil)
	p.Trips = func(err error) bool { return !errors.Is(err, errRow) }

	for i := 0; i < 20; i++ {
		_, err := resilience.Do(context.Background(), p, func(ctx context.Context) (int, error) {
			return 0, errRow
		})
		assert.ErrorIs(t, err, errRow)
	}

	assert.Equal(t, gobreaker.StateClosed, p.State())

	got, err := resilience.Do(context.Background(), p, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 7, got)
}
