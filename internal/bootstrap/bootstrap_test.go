package bootstrap_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-workforce/internal/bootstrap"
	"go-workforce/internal/systemlog"
	mock_systemlog "go-workforce/internal/systemlog/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, entry.Action)
}

func TestServe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	audit := &recordingAudit{}
	done := make(chan error, 1)
	go func() {
		done <- bootstrap.Serve(ctx, ln, router, bootstrap.ServerConfig{ReadTimeout: time.Second}, audit)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"SERVER_START", "SERVER_SHUTDOWN"}, audit.actions)
}

func TestSystemLogAuditLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("writes an INFO row", func(t *testing.T) {
		logs := mock_systemlog.NewMockService(gomock.NewController(t))
		logs.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, req systemlog.CreateLogRequest) (systemlog.LogResponse, error) {
				assert.Equal(t, systemlog.LevelInfo, req.Level)
				assert.Equal(t, "sistema", *req.Module)
				assert.Equal(t, "SERVER_START", req.Context["accion"])
				assert.Equal(t, ":3000", req.Context["addr"])
				return systemlog.LogResponse{}, nil
			})

		bootstrap.NewSystemLogAuditLogger(logs).Log(ctx, bootstrap.AuditLog{
			Action:  "SERVER_START",
			Message: "Server started",
			Meta:    map[string]any{"addr": ":3000"},
		})
	})

	t.Run("write failure does not panic", func(t *testing.T) {
		logs := mock_systemlog.NewMockService(gomock.NewController(t))
		logs.EXPECT().Create(ctx, gomock.Any()).Return(systemlog.LogResponse{}, errors.New("db down"))

		assert.NotPanics(t, func() {
			bootstrap.NewSystemLogAuditLogger(logs).Log(ctx, bootstrap.AuditLog{Action: "SERVER_SHUTDOWN"})
		})
	})
}
