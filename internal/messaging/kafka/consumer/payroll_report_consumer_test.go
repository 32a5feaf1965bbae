package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	calendarerrors "hris-payroll/internal/calendar/errors"
	"hris-payroll/internal/events"
	"hris-payroll/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeExporter struct {
	exportFn func(ctx context.Context, requestID string, month, year int) (string, error)
}

func (f *fakeExporter) ExportToFile(ctx context.Context, requestID string, month, year int) (string, error) {
	return f.exportFn(ctx, requestID, month, year)
}

// scriptedReader serves msgs once, then blocks until ctx is cancelled.
type scriptedReader struct {
	msgs      []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *scriptedReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func requestMessage(t *testing.T, offset int64, requestID string, month int) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(events.PayrollReportRequestedEvent{
		EventType: events.PayrollReportRequestedType, RequestID: requestID,
		Month: month, Year: 2026, RequestedBy: "u-1", OccurredAt: time.Now(),
	})
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: body}
}

func TestConsumePayrollReportRequested(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{cancel: cancel, msgs: []kafkago.Message{
		requestMessage(t, 1, "ok", 2),
		{Offset: 2, Value: []byte("not json")},
		requestMessage(t, 3, "bad-month", 13),
		requestMessage(t, 4, "db-down", 2),
	}}
	dbDownCalls := 0
	exporter := &fakeExporter{exportFn: func(ctx context.Context, requestID string, month, year int) (string, error) {
		switch requestID {
		case "bad-month":
			return "", calendarerrors.ErrInvalidMonth
		case "db-down":
			dbDownCalls++
			if dbDownCalls < 3 {
				return "", calendarerrors.ErrCalendarUnavailable.WithCause(errors.New("timeout"))
			}
		}
		return "/reports/" + requestID + ".xlsx", nil
	}}

	consumer.ConsumePayrollReportRequested(ctx, reader, exporter, time.Millisecond, zap.NewNop())

	var offsets []int64
	for _, m := range reader.committed {
		offsets = append(offsets, m.Offset)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, offsets)
	assert.Equal(t, 3, dbDownCalls)
}

func TestConsumePayrollReportRequested_DoesNotCommitPastUnfinishedReport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{cancel: cancel, msgs: []kafkago.Message{
		requestMessage(t, 7, "db-down", 2),
		requestMessage(t, 8, "ok", 2),
	}}
	calls := 0
	exporter := &fakeExporter{exportFn: func(ctx context.Context, requestID string, month, year int) (string, error) {
		if requestID == "db-down" {
			calls++
			if calls == 3 {
				cancel()
			}
			return "", calendarerrors.ErrCalendarUnavailable.WithCause(errors.New("timeout"))
		}
		return "/reports/" + requestID + ".xlsx", nil
	}}

	consumer.ConsumePayrollReportRequested(ctx, reader, exporter, time.Millisecond, zap.NewNop())

	assert.Empty(t, reader.committed)
	assert.Equal(t, 3, calls)
	assert.Len(t, reader.msgs, 1)
}
