package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type StdoutAuditLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewStdoutAuditLogger(logger *zap.Logger) *StdoutAuditLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &StdoutAuditLogger{logger: logger.Named("audit"), now: time.Now}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
	}
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}
	l.logger.Info("audit event", fields...)
}
