package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"hris-payroll/internal/events"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// OutboxStatusDead marks an event that used up MaxOutboxAttempts.
	OutboxStatusDead = "dead"

	MaxOutboxAttempts = 10

	reportAggregateType = "payroll_report"
)

// OutboxEvent is one message waiting to be published. AggregateID doubles as
// the kafka partition key, so all events of one report request stay ordered.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	Attempts      int
	CreatedAt     time.Time
}

// NewReportRequestedEvent wraps a report request for the outbox, keyed by its
// request id.
func NewReportRequestedEvent(id string, req events.PayrollReportRequestedEvent) (OutboxEvent, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("encode report request: %w", err)
	}

	event := OutboxEvent{
		ID:            id,
		RequestID:     req.RequestID,
		AggregateType: reportAggregateType,
		AggregateID:   req.RequestID,
		EventType:     events.PayrollReportRequestedType,
		Topic:         events.PayrollReportRequestedTopic,
		Payload:       payload,
		Status:        OutboxStatusPending,
	}
	if err := ValidateOutboxEvent(event); err != nil {
		return OutboxEvent{}, err
	}
	return event, nil
}

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Enqueue(ctx context.Context, event OutboxEvent) error
	// ClaimDue leases up to limit due events for lease so concurrent workers
	// never publish the same event twice within the lease.
	ClaimDue(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) Enqueue(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	const query = `
INSERT INTO outbox_events (id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`

	var execer interface {
		ExecContext(context.Context, string, ...any) (sql.Result, error)
	} = r.db
	if r.tx != nil {
		execer = r.tx
	}

	_, err := execer.ExecContext(ctx, query,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

func (r *outboxRepository) ClaimDue(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error) {
	const query = `
WITH due AS (
	SELECT id FROM outbox_events
	WHERE status IN ($1, $2)
		AND retry_count < $3
		AND (next_retry_at IS NULL OR next_retry_at <= NOW())
	ORDER BY created_at
	LIMIT $4
	FOR UPDATE SKIP LOCKED
)
UPDATE outbox_events o
SET next_retry_at = NOW() + make_interval(secs => $5), updated_at = NOW()
FROM due
WHERE o.id = due.id
RETURNING o.id::text, COALESCE(o.request_id::text, ''), o.aggregate_type, o.aggregate_id::text,
	o.event_type, o.topic, o.payload, o.status, o.retry_count, o.created_at`

	rows, err := r.db.QueryContext(ctx, query,
		OutboxStatusPending, OutboxStatusFailed, MaxOutboxAttempts, limit, lease.Seconds(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claimed []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID,
			&e.EventType, &e.Topic, &e.Payload, &e.Status, &e.Attempts, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		claimed = append(claimed, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// RETURNING does not keep the CTE order.
	sort.SliceStable(claimed, func(i, j int) bool {
		return claimed[i].CreatedAt.Before(claimed[j].CreatedAt)
	})
	return claimed, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	const query = `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusSent)
	return err
}

// MarkFailed schedules the next attempt with exponential backoff, or buries the
// event once MaxOutboxAttempts is reached.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	const query = `
UPDATE outbox_events
SET retry_count = retry_count + 1,
	status = CASE WHEN retry_count + 1 >= $3 THEN $4 ELSE $2 END,
	error_message = LEFT($5, 500),
	next_retry_at = NOW() + INTERVAL '15 seconds' * POWER(2, LEAST(retry_count, 8)),
	updated_at = NOW()
WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusFailed, MaxOutboxAttempts, OutboxStatusDead, reason)
	return err
}

func ValidateOutboxEvent(event OutboxEvent) error {
	var errs []error
	if event.ID == "" {
		errs = append(errs, errors.New("outbox id is required"))
	}
	if event.AggregateID == "" {
		errs = append(errs, errors.New("outbox aggregate id is required"))
	}
	if event.Topic == "" {
		errs = append(errs, errors.New("outbox topic is required"))
	}
	if len(event.Payload) == 0 {
		errs = append(errs, errors.New("outbox payload is required"))
	}
	if event.Status != OutboxStatusPending {
		errs = append(errs, fmt.Errorf("new outbox event must be %s, got %q", OutboxStatusPending, event.Status))
	}
	return errors.Join(errs...)
}
