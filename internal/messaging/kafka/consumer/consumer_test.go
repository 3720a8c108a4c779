package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka/consumer"
	"go-workforce/internal/systemlog"
	mock_systemlog "go-workforce/internal/systemlog/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeReader serves queued messages and cancels the consumer once drained.
type fakeReader struct {
	queue      []kafkago.Message
	committed  []int64
	cancel     context.CancelFunc
	fetchFails int
	fetches    int
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.fetches++
	if r.fetchFails > 0 {
		r.fetchFails--
		return kafkago.Message{}, errors.New("broker unavailable")
	}
	if len(r.queue) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func encode(t *testing.T, e events.EmployeeLifecycleEvent) []byte {
	t.Helper()
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return b
}

func TestConsumeEmployeeLifecycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logs := mock_systemlog.NewMockService(gomock.NewController(t))

	created := events.EmployeeLifecycleEvent{
		EventType:    events.EmployeeCreated,
		RequestID:    "req-1",
		EmployeeID:   7,
		DepartmentID: 2,
		FullName:     "Ana Ruiz",
		Email:        "ana@example.com",
		OccurredAt:   time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC),
	}
	deleted := events.EmployeeLifecycleEvent{
		EventType:  events.EmployeeDeleted,
		EmployeeID: 8,
		FullName:   "Luis Paz",
		Deleted:    map[string]int64{"empleados": 1, "usuarios": 1},
	}

	reader := &fakeReader{
		cancel: cancel,
		queue: []kafkago.Message{
			{Offset: 1, Value: encode(t, created)},
			{Offset: 2, Value: []byte("not json")},
			{Offset: 3, Value: encode(t, deleted)},
		},
	}

	gomock.InOrder(
		logs.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req systemlog.CreateLogRequest) (systemlog.LogResponse, error) {
				assert.Equal(t, systemlog.LevelInfo, req.Level)
				assert.Equal(t, "Empleado creado: Ana Ruiz", req.Message)
				assert.Equal(t, "empleados", *req.Module)
				assert.Equal(t, uint(7), req.Context["id_empleado"])
				assert.Equal(t, "req-1", req.Context["request_id"])
				return systemlog.LogResponse{}, nil
			}),
		logs.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req systemlog.CreateLogRequest) (systemlog.LogResponse, error) {
				assert.Equal(t, "Empleado eliminado: Luis Paz", req.Message)
				assert.Equal(t, map[string]int64{"empleados": 1, "usuarios": 1}, req.Context["eliminados"])
				return systemlog.LogResponse{}, errors.New("db down")
			}),
		logs.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(systemlog.LogResponse{}, nil),
	)

	consumer.ConsumeEmployeeLifecycle(ctx, reader, logs, zap.NewNop(), time.Millisecond)

	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
}

func TestConsumeEmployeeLifecycle_FailedWriteHoldsOffset(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logs := mock_systemlog.NewMockService(gomock.NewController(t))

	event := events.EmployeeLifecycleEvent{EventType: events.EmployeeCreated, EmployeeID: 7, FullName: "Ana Ruiz"}
	reader := &fakeReader{
		cancel: cancel,
		queue: []kafkago.Message{
			{Offset: 10, Value: encode(t, event)},
			{Offset: 11, Value: encode(t, event)},
		},
	}

	calls := 0
	logs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, systemlog.CreateLogRequest) (systemlog.LogResponse, error) {
			calls++
			if calls == 3 {
				cancel()
			}
			return systemlog.LogResponse{}, errors.New("db down")
		}).
		Times(3)

	consumer.ConsumeEmployeeLifecycle(ctx, reader, logs, zap.NewNop(), time.Millisecond)

	assert.Empty(t, reader.committed)
	assert.Equal(t, 1, reader.fetches, "no later message is fetched while a write is failing")
	assert.Len(t, reader.queue, 1)
}

func TestConsumeEmployeeLifecycle_FetchErrorBacksOff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logs := mock_systemlog.NewMockService(gomock.NewController(t))

	event := events.EmployeeLifecycleEvent{EventType: events.EmployeeDeactivated, EmployeeID: 9, FullName: "Eva Sol"}
	reader := &fakeReader{
		cancel:     cancel,
		fetchFails: 2,
		queue:      []kafkago.Message{{Offset: 4, Value: encode(t, event)}},
	}

	logs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req systemlog.CreateLogRequest) (systemlog.LogResponse, error) {
			assert.Equal(t, "Empleado desactivado: Eva Sol", req.Message)
			return systemlog.LogResponse{}, nil
		})

	start := time.Now()
	consumer.ConsumeEmployeeLifecycle(ctx, reader, logs, zap.NewNop(), 5*time.Millisecond)

	assert.Equal(t, []int64{4}, reader.committed)
	// 5ms then 10ms between the failed fetches.
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
