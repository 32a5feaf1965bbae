package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const maxBackoff = 5 * time.Second

// Policy retries a call with exponential backoff behind a circuit breaker.
// One Policy guards one collaborator. The breaker records one outcome per Do
// call, after the retries are spent.
type Policy struct {
	name        string
	maxAttempts int
	baseDelay   time.Duration
	cb          *gobreaker.CircuitBreaker
	logger      *zap.Logger

	// Retryable reports whether a failed attempt may be repeated.
	Retryable func(error) bool
	// Trips reports whether a failure counts against the breaker. Failures it
	// rejects are returned to the caller but leave the breaker closed.
	Trips func(error) bool
}

func NewPolicy(name string, maxAttempts int, baseDelay time.Duration, logger *zap.Logger) *Policy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Policy{
		name:        name,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger.Named("resilience").With(zap.String("collaborator", name)),
		Retryable:   func(error) bool { return true },
		Trips:       func(error) bool { return true },
	}

	p.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip once at least 10 calls were seen and half of them failed.
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isContextErr(err) || !p.Trips(err)
		},
	})

	return p
}

// Do runs fn until it succeeds, the attempts are exhausted, the breaker is open
// or ctx is done. The last error is returned unchanged.
func Do[T any](ctx context.Context, p *Policy, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	res, err := p.cb.Execute(func() (interface{}, error) {
		return retry(ctx, p, fn)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			p.logger.Warn("circuit breaker rejected call", zap.Error(err))
		}
		return zero, err
	}

	v, _ := res.(T)
	return v, nil
}

func retry[T any](ctx context.Context, p *Policy, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		res, err := fn(ctx)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if isContextErr(err) || !p.Retryable(err) || attempt == p.maxAttempts {
			break
		}

		delay := Backoff(p.baseDelay, attempt)
		p.logger.Warn("call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.maxAttempts),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}

// Backoff doubles base for every failed attempt, capped at five seconds.
func Backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 || attempt < 1 {
		return 0
	}
	d := base
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func (p *Policy) State() gobreaker.State {
	return p.cb.State()
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
