package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutAuditLogger(zap.New(core))
	l.now = func() time.Time { return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC) }

	l.Log(context.Background(), AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta:    map[string]any{"signal": "terminated"},
	})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "audit", entries[0].LoggerName)
		assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
		assert.Equal(t, "2024-02-01T09:00:00Z", fields["timestamp"])
		assert.Contains(t, fields, "meta")
	}
}

func TestStdoutAuditLogger_OmitsEmptyMeta(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := NewStdoutAuditLogger(zap.New(core))

	l.Log(context.Background(), AuditLog{Action: "SERVER_START"})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.NotContains(t, entries[0].ContextMap(), "meta")
	}
}

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig("8080")
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
