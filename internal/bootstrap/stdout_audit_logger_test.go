package bootstrap

import (
	"context"
	"testing"

	"go-teamdesk/internal/shared/config"
	"go-teamdesk/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := &StdoutAuditLogger{logger: zap.New(core)}

	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	l.Log(ctx, AuditLog{Action: "SERVER_SHUTDOWN", Message: "bye", Meta: map[string]any{"signal": "terminated"}})

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "SERVER_SHUTDOWN", fields["action"])
	assert.Equal(t, "bye", fields["message"])
	assert.Equal(t, "rid-1", fields["request_id"])
}

func TestServerConfigFrom(t *testing.T) {
	cfg := config.Config{Port: "8080"}
	assert.Equal(t, "8080", ServerConfigFrom(cfg).Port)
}
