package bootstrap

import (
	"context"
	"strings"

	"go-workforce/internal/systemlog"

	"go.uber.org/zap"
)

// AuditLog is a process-level event such as startup or shutdown.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

const auditModule = "sistema"

// SystemLogAuditLogger persists audit events as system log rows and falls
// back to the process logger when the write fails.
type SystemLogAuditLogger struct {
	logs     systemlog.Service
	fallback AuditLogger
}

func NewSystemLogAuditLogger(logs systemlog.Service) *SystemLogAuditLogger {
	return &SystemLogAuditLogger{logs: logs, fallback: NewStdoutAuditLogger()}
}

func (l *SystemLogAuditLogger) Log(ctx context.Context, entry AuditLog) {
	module := auditModule
	data := map[string]any{"accion": entry.Action}
	for k, v := range entry.Meta {
		data[k] = v
	}

	_, err := l.logs.Create(ctx, systemlog.CreateLogRequest{
		Level:   systemlog.LevelInfo,
		Message: entry.Message,
		Module:  &module,
		Context: data,
	})
	if err != nil {
		zap.L().Named("audit").Warn("persist audit event failed",
			zap.String("action", strings.ToLower(entry.Action)),
			zap.Error(err),
		)
		l.fallback.Log(ctx, entry)
	}
}
