package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hris-payroll/internal/events"
	"hris-payroll/internal/shared/apperror"
	"hris-payroll/internal/shared/resilience"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type ReportExporter interface {
	ExportToFile(ctx context.Context, requestID string, month, year int) (string, error)
}

const defaultRetryDelay = time.Second

var errPoisonMessage = errors.New("message can never be processed")

// ConsumePayrollReportRequested handles one message at a time. A transient
// failure is retried in place with backoff, so the offset is never committed
// past a report that was not generated. Poison messages are committed.
func ConsumePayrollReportRequested(
	ctx context.Context,
	reader MessageReader,
	exporter ReportExporter,
	retryDelay time.Duration,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_report")
	log.Info("payroll report consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll report consumer stopped")
				return
			}
			log.Error("fetch payroll report message failed", zap.Error(err))
			continue
		}

		if !handleWithRetry(ctx, msg, exporter, retryDelay, log) {
			log.Info("payroll report consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll report message failed", zap.Error(err))
		}
	}
}

// handleWithRetry returns false only when ctx ends before the message is settled.
func handleWithRetry(
	ctx context.Context,
	msg kafkago.Message,
	exporter ReportExporter,
	retryDelay time.Duration,
	log *zap.Logger,
) bool {
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	for attempt := 1; ; attempt++ {
		err := HandlePayrollReportRequested(ctx, msg, exporter, log)
		if err == nil || errors.Is(err, errPoisonMessage) {
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		delay := resilience.Backoff(retryDelay, attempt)
		log.Warn("payroll report failed, retrying",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

// HandlePayrollReportRequested renders the requested report. Messages that
// cannot succeed on redelivery return an error wrapping errPoisonMessage so the
// caller commits past them.
func HandlePayrollReportRequested(
	ctx context.Context,
	msg kafkago.Message,
	exporter ReportExporter,
	log *zap.Logger,
) error {
	var event events.PayrollReportRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payroll report event failed", zap.Error(err))
		return errors.Join(errPoisonMessage, err)
	}

	path, err := exporter.ExportToFile(ctx, event.RequestID, event.Month, event.Year)
	if err != nil {
		log.Error("generate payroll report failed",
			zap.String("request_id", event.RequestID),
			zap.Int("month", event.Month),
			zap.Int("year", event.Year),
			zap.Error(err),
		)
		if apperror.HasCode(err, apperror.CodeInvalidInput) {
			return errors.Join(errPoisonMessage, err)
		}
		return err
	}

	log.Info("payroll report generated",
		zap.String("request_id", event.RequestID),
		zap.String("requested_by", event.RequestedBy),
		zap.String("path", path),
	)
	return nil
}
