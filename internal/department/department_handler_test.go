package department_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-workforce/internal/department"
	departmenterrors "go-workforce/internal/department/errors"
	"go-workforce/internal/relation"
	"go-workforce/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDepartmentService struct {
	CreateFn  func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn  func(ctx context.Context, filter department.DepartmentFilter) ([]department.DepartmentResponse, error)
	GetByIDFn func(ctx context.Context, id uint) (department.DepartmentResponse, error)
	UpdateFn  func(ctx context.Context, id uint, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteFn  func(ctx context.Context, id uint) (relation.Report, error)
}

func (f *fakeDepartmentService) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context, filter department.DepartmentFilter) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, id uint) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, id uint, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, id uint) (relation.Report, error) {
	return f.DeleteFn(ctx, id)
}

func setupRouter(svc department.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	r := gin.New()
	department.RegisterRoutes(r.Group("/api"), department.NewHandler(svc))
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

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(_ context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				assert.Equal(t, "Finanzas", req.Name)
				return department.DepartmentResponse{ID: 1, Name: req.Name, Status: "activo"}, nil
			},
		}

		w := doRequest(setupRouter(svc), http.MethodPost, "/api/departamentos", `{"nombre":"Finanzas"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Finanzas", body["data"].(map[string]any)["nombre"])
	})

	t.Run("binding failure reports field errors", func(t *testing.T) {
		w := doRequest(setupRouter(&fakeDepartmentService{}), http.MethodPost, "/api/departamentos", `{"estado":"otro"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		errs := body["errors"].(map[string]any)
		assert.Contains(t, errs, "nombre")
		assert.Contains(t, errs, "estado")
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(context.Context, department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNameTaken
			},
		}

		w := doRequest(setupRouter(svc), http.MethodPost, "/api/departamentos", `{"nombre":"IT"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["errors"], "nombre")
	})
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	t.Run("passes estado filter and reports count", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetAllFn: func(_ context.Context, filter department.DepartmentFilter) ([]department.DepartmentResponse, error) {
				require.NotNil(t, filter.Status)
				assert.Equal(t, "activo", *filter.Status)
				return []department.DepartmentResponse{{ID: 1}, {ID: 2}}, nil
			},
		}

		w := doRequest(setupRouter(svc), http.MethodGet, "/api/departamentos?estado=activo", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(2), decode(t, w)["count"])
	})

	t.Run("empty list still has count and data", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetAllFn: func(context.Context, department.DepartmentFilter) ([]department.DepartmentResponse, error) {
				return []department.DepartmentResponse{}, nil
			},
		}

		w := doRequest(setupRouter(svc), http.MethodGet, "/api/departamentos", "")

		body := decode(t, w)
		assert.Equal(t, float64(0), body["count"])
		assert.Equal(t, []any{}, body["data"])
	})

	t.Run("unexpected error hides the cause", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetAllFn: func(context.Context, department.DepartmentFilter) ([]department.DepartmentResponse, error) {
				return nil, errors.New("pq: connection refused")
			},
		}

		w := doRequest(setupRouter(svc), http.MethodGet, "/api/departamentos", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestDepartmentHandler_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetByIDFn: func(_ context.Context, id uint) (department.DepartmentResponse, error) {
				assert.Equal(t, uint(42), id)
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
			},
		}

		w := doRequest(setupRouter(svc), http.MethodGet, "/api/departamentos/42", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Department not found", decode(t, w)["message"])
	})

	t.Run("non numeric id", func(t *testing.T) {
		w := doRequest(setupRouter(&fakeDepartmentService{}), http.MethodGet, "/api/departamentos/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDepartmentHandler_Update(t *testing.T) {
	svc := &fakeDepartmentService{
		UpdateFn: func(_ context.Context, id uint, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
			assert.Nil(t, req.Name)
			require.NotNil(t, req.Description)
			return department.DepartmentResponse{ID: id, Description: *req.Description}, nil
		},
	}

	w := doRequest(setupRouter(svc), http.MethodPut, "/api/departamentos/3", `{"descripcion":"Soporte"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Soporte", decode(t, w)["data"].(map[string]any)["descripcion"])
}

func TestDepartmentHandler_Delete(t *testing.T) {
	svc := &fakeDepartmentService{
		DeleteFn: func(_ context.Context, id uint) (relation.Report, error) {
			return relation.Report{Deleted: map[relation.Kind]int64{relation.KindDepartment: 1, relation.KindRole: 2}}, nil
		},
	}

	w := doRequest(setupRouter(svc), http.MethodDelete, "/api/departamentos/3", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	deleted := body["data"].(map[string]any)["eliminados"].(map[string]any)
	assert.Equal(t, float64(2), deleted["roles"])
}
