package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-workforce/internal/events"
	"go-workforce/internal/systemlog"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	lifecycleModule = "empleados"

	defaultRetryBackoff = time.Second
	maxRetryBackoff     = 30 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeEmployeeLifecycle records every employee lifecycle event as a
// system log entry. Undecodable messages are committed and skipped. A failed
// write is retried with exponential back-off starting at retryBackoff, and
// no later message is fetched until it succeeds, so the group offset never
// moves past an unrecorded event.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	logs systemlog.Service,
	logger *zap.Logger,
	retryBackoff time.Duration,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	log.Info("employee lifecycle consumer started")

	fetchBackoff := retryBackoff
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed",
				zap.Duration("retry_in", fetchBackoff),
				zap.Error(err),
			)
			if !wait(ctx, fetchBackoff) {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			fetchBackoff = nextBackoff(fetchBackoff)
			continue
		}
		fetchBackoff = retryBackoff

		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if !record(ctx, logs, event, retryBackoff, log) {
			log.Info("employee lifecycle consumer stopped",
				zap.Int64("uncommitted_offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("employee lifecycle event recorded",
			zap.String("event_type", event.EventType),
			zap.Uint("employee_id", event.EmployeeID),
		)
	}
}

// record writes the log entry, retrying until it succeeds or ctx ends.
func record(
	ctx context.Context,
	logs systemlog.Service,
	event events.EmployeeLifecycleEvent,
	backoff time.Duration,
	log *zap.Logger,
) bool {
	entry := logEntry(event)
	for attempt := 1; ; attempt++ {
		_, err := logs.Create(ctx, entry)
		if err == nil {
			return true
		}
		log.Error("record employee lifecycle event failed",
			zap.String("event_type", event.EventType),
			zap.Uint("employee_id", event.EmployeeID),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", backoff),
			zap.Error(err),
		)
		if !wait(ctx, backoff) {
			return false
		}
		backoff = nextBackoff(backoff)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	d *= 2
	if d > maxRetryBackoff {
		return maxRetryBackoff
	}
	return d
}

func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func logEntry(event events.EmployeeLifecycleEvent) systemlog.CreateLogRequest {
	module := lifecycleModule
	data := map[string]any{
		"evento":          event.EventType,
		"id_empleado":     event.EmployeeID,
		"id_departamento": event.DepartmentID,
		"email":           event.Email,
		"occurred_at":     event.OccurredAt,
	}
	if event.RequestID != "" {
		data["request_id"] = event.RequestID
	}
	if len(event.Deleted) > 0 {
		data["eliminados"] = event.Deleted
	}

	return systemlog.CreateLogRequest{
		Level:   systemlog.LevelInfo,
		Message: describe(event),
		Module:  &module,
		Context: data,
	}
}

func describe(event events.EmployeeLifecycleEvent) string {
	switch event.EventType {
	case events.EmployeeCreated:
		return fmt.Sprintf("Empleado creado: %s", event.FullName)
	case events.EmployeeDeactivated:
		return fmt.Sprintf("Empleado desactivado: %s", event.FullName)
	case events.EmployeeDeleted:
		return fmt.Sprintf("Empleado eliminado: %s", event.FullName)
	default:
		return fmt.Sprintf("Evento de empleado %s: %s", event.EventType, event.FullName)
	}
}
