package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-workforce/internal/relation"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/user"
	usererrors "go-workforce/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	CreateFn      func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	GetAllFn      func(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, error)
	GetByIDFn     func(ctx context.Context, id uint) (user.UserResponse, error)
	UpdateFn      func(ctx context.Context, id uint, req user.UpdateUserRequest) (user.UserResponse, error)
	DeleteFn      func(ctx context.Context, id uint) (relation.Report, error)
	LockFn        func(ctx context.Context, id uint) (user.UserResponse, error)
	UnlockFn      func(ctx context.Context, id uint) (user.UserResponse, error)
	FailedLoginFn func(ctx context.Context, id uint) (user.UserResponse, error)
}

func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeUserService) GetAll(ctx context.Context, filter user.UserFilter) ([]user.UserResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeUserService) GetByID(ctx context.Context, id uint) (user.UserResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeUserService) Update(ctx context.Context, id uint, req user.UpdateUserRequest) (user.UserResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeUserService) Delete(ctx context.Context, id uint) (relation.Report, error) {
	return f.DeleteFn(ctx, id)
}
func (f *fakeUserService) Lock(ctx context.Context, id uint) (user.UserResponse, error) {
	return f.LockFn(ctx, id)
}
func (f *fakeUserService) Unlock(ctx context.Context, id uint) (user.UserResponse, error) {
	return f.UnlockFn(ctx, id)
}
func (f *fakeUserService) RecordFailedLogin(ctx context.Context, id uint) (user.UserResponse, error) {
	return f.FailedLoginFn(ctx, id)
}

func setupRouter(svc user.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	user.RegisterRoutes(r.Group("/api"), user.NewHandler(svc))
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestUserHandler_Create(t *testing.T) {
	t.Run("response never carries the password hash", func(t *testing.T) {
		svc := &fakeUserService{
			CreateFn: func(_ context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
				assert.Equal(t, "s3creta-larga", req.Password)
				require.NotNil(t, req.Settings)
				assert.Equal(t, "es", req.Settings.Language)
				return user.UserResponse{ID: 3, Username: req.Username, Status: user.StatusActive}, nil
			},
		}

		w := doRequest(setupRouter(svc), http.MethodPost, "/api/usuarios",
			`{"id_empleado":11,"username":"lgomez","password":"s3creta-larga","configuracion_usuario":{"idioma":"es"}}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
		assert.Equal(t, "lgomez", decode(t, w)["data"].(map[string]any)["username"])
	})

	t.Run("short password fails binding", func(t *testing.T) {
		w := doRequest(setupRouter(&fakeUserService{}), http.MethodPost, "/api/usuarios",
			`{"id_empleado":11,"username":"lgomez","password":"corta"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["errors"], "password")
	})

	t.Run("bloqueado is not accepted as estado", func(t *testing.T) {
		w := doRequest(setupRouter(&fakeUserService{}), http.MethodPost, "/api/usuarios",
			`{"id_empleado":11,"username":"lgomez","password":"s3creta-larga","estado":"bloqueado"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("username taken", func(t *testing.T) {
		svc := &fakeUserService{
			CreateFn: func(context.Context, user.CreateUserRequest) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrUsernameTaken
			},
		}

		w := doRequest(setupRouter(svc), http.MethodPost, "/api/usuarios",
			`{"id_empleado":11,"username":"lgomez","password":"s3creta-larga"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["errors"], "username")
	})
}

func TestUserHandler_GetAll(t *testing.T) {
	t.Run("parses bloqueado filter", func(t *testing.T) {
		svc := &fakeUserService{
			GetAllFn: func(_ context.Context, filter user.UserFilter) ([]user.UserResponse, error) {
				require.NotNil(t, filter.Locked)
				assert.True(t, *filter.Locked)
				assert.Nil(t, filter.EmployeeID)
				return []user.UserResponse{{ID: 3}, {ID: 4}}, nil
			},
		}

		w := doRequest(setupRouter(svc), http.MethodGet, "/api/usuarios?bloqueado=true", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 2, decode(t, w)["count"])
	})

	t.Run("invalid bloqueado value", func(t *testing.T) {
		w := doRequest(setupRouter(&fakeUserService{}), http.MethodGet, "/api/usuarios?bloqueado=quizas", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_Actions(t *testing.T) {
	var called []string
	svc := &fakeUserService{
		LockFn: func(_ context.Context, id uint) (user.UserResponse, error) {
			called = append(called, "lock")
			return user.UserResponse{ID: id, Locked: true, Status: user.StatusLocked}, nil
		},
		UnlockFn: func(_ context.Context, id uint) (user.UserResponse, error) {
			called = append(called, "unlock")
			return user.UserResponse{ID: id, Status: user.StatusActive}, nil
		},
		FailedLoginFn: func(_ context.Context, id uint) (user.UserResponse, error) {
			called = append(called, "failed")
			return user.UserResponse{ID: id, FailedAttempts: 1}, nil
		},
	}
	r := setupRouter(svc)

	w := doRequest(r, http.MethodPost, "/api/usuarios/3/bloquear", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["data"].(map[string]any)["bloqueado"])

	w = doRequest(r, http.MethodPost, "/api/usuarios/3/desbloquear", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, http.MethodPost, "/api/usuarios/3/intento-fallido", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["data"].(map[string]any)["intentos_fallidos"])

	assert.Equal(t, []string{"lock", "unlock", "failed"}, called)

	w = doRequest(r, http.MethodPost, "/api/usuarios/abc/bloquear", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Update(t *testing.T) {
	svc := &fakeUserService{
		UpdateFn: func(context.Context, uint, user.UpdateUserRequest) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrUserLocked
		},
	}

	w := doRequest(setupRouter(svc), http.MethodPut, "/api/usuarios/3", `{"estado":"activo"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "estado")
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &fakeUserService{
		DeleteFn: func(context.Context, uint) (relation.Report, error) {
			return relation.Report{
				Deleted:   map[relation.Kind]int64{relation.KindUser: 1},
				Nullified: map[relation.Kind]int64{relation.KindSystemLog: 2},
			}, nil
		},
	}

	w := doRequest(setupRouter(svc), http.MethodDelete, "/api/usuarios/3", "")

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 2, data["desvinculados"].(map[string]any)["log_sistema"])
}

func TestUserHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeUserService{
		GetByIDFn: func(context.Context, uint) (user.UserResponse, error) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		},
	}

	w := doRequest(setupRouter(svc), http.MethodGet, "/api/usuarios/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
