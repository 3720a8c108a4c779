package app_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-workforce/internal/activity"
	"go-workforce/internal/app"
	"go-workforce/internal/config"
	"go-workforce/internal/department"
	"go-workforce/internal/employee"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/notification"
	"go-workforce/internal/profile"
	"go-workforce/internal/role"
	"go-workforce/internal/session"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/testdb"
	"go-workforce/internal/systemlog"
	"go-workforce/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

type harness struct {
	t      *testing.T
	router *gin.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	db := testdb.Open(t,
		&department.Department{},
		&role.Role{},
		&employee.Employee{},
		&user.User{},
		&session.Session{},
		&profile.Profile{},
		&notification.Notification{},
		&activity.Activity{},
		&systemlog.Entry{},
		&kafka.OutboxEvent{},
	)

	router, _ := app.NewRouter(app.Deps{
		DB:     db,
		Clock:  &clock.Fixed{T: time.Date(2026, 7, 6, 9, 0, 0, 0, time.UTC)},
		Logger: zap.NewNop(),
		Config: &config.Config{SessionTTL: 8 * time.Hour},
	})
	return &harness{t: t, router: router}
}

func (h *harness) do(method, path string, body any) (int, envelope) {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

type generalCounts struct {
	TotalEmployees   int64 `json:"total_empleados"`
	ActiveEmployees  int64 `json:"empleados_activos"`
	TotalDepartments int64 `json:"total_departamentos"`
	TotalRoles       int64 `json:"total_roles"`
}

func TestStatus(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Workforce API is running"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNewRouter_DefaultsOptionalDeps(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testdb.Open(t, &department.Department{})

	var router *gin.Engine
	require.NotPanics(t, func() {
		router, _ = app.NewRouter(app.Deps{DB: db})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDepartmentRoleEmployeeFlow(t *testing.T) {
	h := newHarness(t)

	code, env := h.do(http.MethodPost, "/api/departamentos", map[string]any{"nombre": "IT"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	dept := decode[struct {
		ID uint `json:"id_departamento"`
	}](t, env.Data)

	code, env = h.do(http.MethodGet, "/api/estadisticas/departamentos", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, env.Count)
	assert.Contains(t, string(env.Data), `"total_empleados":0`)

	code, env = h.do(http.MethodPost, "/api/roles", map[string]any{"nombre": "Desarrollador", "id_departamento": dept.ID})
	require.Equal(t, http.StatusCreated, code, env.Message)
	rl := decode[struct {
		ID uint `json:"id_rol"`
	}](t, env.Data)

	for i, status := range []string{"activo", "suspendido"} {
		code, env = h.do(http.MethodPost, "/api/empleados", map[string]any{
			"numero_documento": fmt.Sprintf("10%d", i),
			"nombres":          "Ana",
			"apellidos":        fmt.Sprintf("Ruiz %d", i),
			"email":            fmt.Sprintf("ana%d@example.com", i),
			"id_departamento":  dept.ID,
			"id_rol":           rl.ID,
			"fecha_ingreso":    "2026-01-15",
			"estado":           status,
		})
		require.Equal(t, http.StatusCreated, code, string(env.Data)+env.Message)
	}

	code, env = h.do(http.MethodGet, "/api/estadisticas/generales", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, generalCounts{TotalEmployees: 2, ActiveEmployees: 1, TotalDepartments: 1, TotalRoles: 1}, decode[generalCounts](t, env.Data))

	code, env = h.do(http.MethodGet, "/api/estadisticas/departamentos", nil)
	require.Equal(t, http.StatusOK, code)
	perDept := decode[[]struct {
		Total     int64 `json:"total_empleados"`
		Active    int64 `json:"empleados_activos"`
		Suspended int64 `json:"empleados_suspendidos"`
	}](t, env.Data)
	require.Len(t, perDept, 1)
	assert.Equal(t, int64(2), perDept[0].Total)
	assert.Equal(t, int64(1), perDept[0].Active)
	assert.Equal(t, int64(1), perDept[0].Suspended)

	code, env = h.do(http.MethodGet, "/api/empleados/buscar?q=ruiz", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, env.Count)

	code, _ = h.do(http.MethodGet, "/api/empleados/buscar?q=", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = h.do(http.MethodDelete, fmt.Sprintf("/api/departamentos/%d", dept.ID), nil)
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = h.do(http.MethodGet, "/api/estadisticas/generales", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, generalCounts{}, decode[generalCounts](t, env.Data))
}
