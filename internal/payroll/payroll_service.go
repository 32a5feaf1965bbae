package payroll

import (
	"bytes"
	"context"
	"database/sql"
	"time"

	"hris-payroll/internal/calendar"
	"hris-payroll/internal/events"
	"hris-payroll/internal/messaging/kafka"
	payrollerrors "hris-payroll/internal/payroll/errors"
	"hris-payroll/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReportBuilder interface {
	BuildReport(ctx context.Context, month, year int) (Report, error)
}

type Service interface {
	GetReport(ctx context.Context, req ReportQuery) (Report, error)
	ExportReport(ctx context.Context, req ReportQuery) ([]byte, string, error)
	RequestReport(ctx context.Context, actorID string, req ReportQuery) (ReportRequestAccepted, error)
}

type service struct {
	builder ReportBuilder
	db      *sql.DB
	outbox  kafka.OutboxRepository
	now     func() time.Time
}

func NewService(builder ReportBuilder, db *sql.DB, outbox kafka.OutboxRepository) Service {
	return &service{builder: builder, db: db, outbox: outbox, now: time.Now}
}

func (s *service) GetReport(ctx context.Context, req ReportQuery) (Report, error) {
	return s.builder.BuildReport(ctx, req.Month, req.Year)
}

func (s *service) ExportReport(ctx context.Context, req ReportQuery) ([]byte, string, error) {
	report, err := s.builder.BuildReport(ctx, req.Month, req.Year)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := WriteReportXLSX(&buf, report); err != nil {
		return nil, "", payrollerrors.ErrExportFailed.WithCause(err)
	}
	return buf.Bytes(), ReportFilename(req.Month, req.Year), nil
}

// RequestReport records a report request in the outbox; the worker publishes
// it and the consumer renders the spreadsheet.
func (s *service) RequestReport(ctx context.Context, actorID string, req ReportQuery) (ReportRequestAccepted, error) {
	if err := calendar.ValidatePeriod(req.Month, req.Year); err != nil {
		return ReportRequestAccepted{}, err
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return ReportRequestAccepted{}, payrollerrors.ErrInvalidActorID
	}

	requestID := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.NewString()
	}

	event, err := kafka.NewReportRequestedEvent(uuid.NewString(), events.PayrollReportRequestedEvent{
		EventType:   events.PayrollReportRequestedType,
		RequestID:   requestID,
		Month:       req.Month,
		Year:        req.Year,
		RequestedBy: actorID,
		OccurredAt:  s.now().UTC(),
	})
	if err != nil {
		return ReportRequestAccepted{}, payrollerrors.ErrEnqueueFailed.WithCause(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ReportRequestAccepted{}, payrollerrors.ErrEnqueueFailed.WithCause(err)
	}
	defer tx.Rollback()

	if err := s.outbox.WithTx(tx).Enqueue(ctx, event); err != nil {
		return ReportRequestAccepted{}, payrollerrors.ErrEnqueueFailed.WithCause(err)
	}
	if err := tx.Commit(); err != nil {
		return ReportRequestAccepted{}, payrollerrors.ErrEnqueueFailed.WithCause(err)
	}

	contextutil.GetLogger(ctx, zap.L()).Info("payroll report requested",
		zap.String("request_id", requestID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	return ReportRequestAccepted{
		RequestID: requestID,
		Month:     req.Month,
		Year:      req.Year,
		Status:    ReportRequestQueued,
	}, nil
}
