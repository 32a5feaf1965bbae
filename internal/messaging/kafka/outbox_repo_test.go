package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hris-payroll/internal/events"
	"hris-payroll/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportRequest() events.PayrollReportRequestedEvent {
	return events.PayrollReportRequestedEvent{
		EventType:   events.PayrollReportRequestedType,
		RequestID:   "r-1",
		Month:       2,
		Year:        2026,
		RequestedBy: "u-1",
		OccurredAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestNewReportRequestedEvent(t *testing.T) {
	event, err := kafka.NewReportRequestedEvent("e-1", reportRequest())

	require.NoError(t, err)
	assert.Equal(t, "e-1", event.ID)
	assert.Equal(t, "r-1", event.RequestID)
	assert.Equal(t, "r-1", event.AggregateID)
	assert.Equal(t, events.PayrollReportRequestedTopic, event.Topic)
	assert.Equal(t, events.PayrollReportRequestedType, event.EventType)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)

	var decoded events.PayrollReportRequestedEvent
	require.NoError(t, json.Unmarshal(event.Payload, &decoded))
	assert.Equal(t, 2, decoded.Month)
	assert.Equal(t, "u-1", decoded.RequestedBy)
}

func TestNewReportRequestedEvent_RequiresRequestID(t *testing.T) {
	req := reportRequest()
	req.RequestID = ""

	_, err := kafka.NewReportRequestedEvent("e-1", req)

	assert.ErrorContains(t, err, "aggregate id")
}

func TestOutboxRepository_EnqueueInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event, err := kafka.NewReportRequestedEvent("e-1", reportRequest())
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO outbox_events`).
		WithArgs("e-1", "r-1", "payroll_report", "r-1", events.PayrollReportRequestedType,
			events.PayrollReportRequestedTopic, event.Payload, kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	assert.NoError(t, kafka.NewOutboxRepository(db).WithTx(tx).Enqueue(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_EnqueueRejectsInvalidEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = kafka.NewOutboxRepository(db).Enqueue(context.Background(), kafka.OutboxEvent{ID: "e-1"})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ClaimDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	older := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Minute)
	mock.ExpectQuery(`FOR UPDATE SKIP LOCKED(.|\n)+RETURNING`).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, kafka.MaxOutboxAttempts, 50, float64(60)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "created_at",
		}).
			AddRow("e-2", "r-2", "payroll_report", "r-2", "payroll.report.requested", "t", []byte(`{}`), "pending", 0, newer).
			AddRow("e-1", "r-1", "payroll_report", "r-1", "payroll.report.requested", "t", []byte(`{}`), "failed", 2, older))

	claimed, err := kafka.NewOutboxRepository(db).ClaimDue(context.Background(), 50, time.Minute)

	require.NoError(t, err)
	require.Len(t, claimed, 2)
	assert.Equal(t, "e-1", claimed[0].ID)
	assert.Equal(t, 2, claimed[0].Attempts)
	assert.Equal(t, "e-2", claimed[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	mock.ExpectExec(`UPDATE outbox_events`).
		WithArgs("e-1", kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE outbox_events(.|\n)+CASE WHEN retry_count \+ 1 >= \$3`).
		WithArgs("e-2", kafka.OutboxStatusFailed, kafka.MaxOutboxAttempts, kafka.OutboxStatusDead, "broker down").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkSent(context.Background(), "e-1"))
	assert.NoError(t, repo.MarkFailed(context.Background(), "e-2", "broker down"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	ok := kafka.OutboxEvent{ID: "e", AggregateID: "r", Topic: "t", Payload: []byte("x"), Status: kafka.OutboxStatusPending}
	assert.NoError(t, kafka.ValidateOutboxEvent(ok))

	missingTopic := ok
	missingTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(missingTopic))

	alreadySent := ok
	alreadySent.Status = kafka.OutboxStatusSent
	assert.Error(t, kafka.ValidateOutboxEvent(alreadySent))
}
