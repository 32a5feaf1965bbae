package payroll

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"time"

	"hris-payroll/internal/adjustment"
	"hris-payroll/internal/attendance"
	"hris-payroll/internal/employee"
	"hris-payroll/internal/shared/apperror"
	"hris-payroll/internal/shared/resilience"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// IsRetryable reports whether a collaborator error may succeed on a later
// attempt. Bad input never does.
func IsRetryable(err error) bool {
	return !apperror.HasCode(err, apperror.CodeInvalidInput)
}

// IsConnectionFailure reports whether err means the store itself is
// unreachable. A failed query for one employee's rows is not.
func IsConnectionFailure(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	return errors.Is(err, driver.ErrBadConn)
}

// NewRetrievalPolicy guards one store. Bad input is never retried and only
// connection failures count against the breaker, so rows failing for some
// employees do not fail the rest of the batch.
func NewRetrievalPolicy(name string, maxAttempts int, baseDelay time.Duration, logger *zap.Logger) *resilience.Policy {
	p := resilience.NewPolicy(name, maxAttempts, baseDelay, logger)
	p.Retryable = IsRetryable
	p.Trips = IsConnectionFailure
	return p
}

type guardedRoster struct {
	next   RosterSource
	policy *resilience.Policy
}

func GuardRoster(next RosterSource, policy *resilience.Policy) RosterSource {
	return &guardedRoster{next: next, policy: policy}
}

func (g *guardedRoster) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	return resilience.Do(ctx, g.policy, g.next.ListEmployees)
}

type guardedEvents struct {
	next   attendance.EventSource
	policy *resilience.Policy
}

func GuardEvents(next attendance.EventSource, policy *resilience.Policy) attendance.EventSource {
	return &guardedEvents{next: next, policy: policy}
}

func (g *guardedEvents) ListAttendanceEvents(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]attendance.Event, error) {
	return resilience.Do(ctx, g.policy, func(ctx context.Context) ([]attendance.Event, error) {
		return g.next.ListAttendanceEvents(ctx, employeeID, start, end)
	})
}

type guardedAdjustments struct {
	next   adjustment.Source
	policy *resilience.Policy
}

func GuardAdjustments(next adjustment.Source, policy *resilience.Policy) adjustment.Source {
	return &guardedAdjustments{next: next, policy: policy}
}

func (g *guardedAdjustments) ListAdjustments(ctx context.Context, employeeID uuid.UUID, start, end time.Time) ([]adjustment.Adjustment, error) {
	return resilience.Do(ctx, g.policy, func(ctx context.Context) ([]adjustment.Adjustment, error) {
		return g.next.ListAdjustments(ctx, employeeID, start, end)
	})
}
