package profile_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-workforce/internal/profile"
	profileerrors "go-workforce/internal/profile/errors"
	mock_profile "go-workforce/internal/profile/mock"
	"go-workforce/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRouter(t *testing.T) (*mock_profile.MockService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	svc := mock_profile.NewMockService(gomock.NewController(t))
	r := gin.New()
	profile.RegisterRoutes(r.Group("/api"), profile.NewHandler(svc))
	return svc, r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestProfileHandler_Create(t *testing.T) {
	svc, r := setupRouter(t)
	svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req profile.CreateProfileRequest) (profile.ProfileResponse, error) {
			assert.Equal(t, []string{"Go"}, req.Skills)
			assert.Equal(t, "C1", req.Languages[0].Level)
			return profile.ProfileResponse{ID: 2, EmployeeID: req.EmployeeID, Skills: req.Skills}, nil
		})

	w := serve(r, http.MethodPost, "/api/perfiles",
		`{"id_empleado":11,"habilidades":["Go"],"idiomas":[{"idioma":"Inglés","nivel":"C1"}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []any{"Go"}, body["data"].(map[string]any)["habilidades"])
}

func TestProfileHandler_GetByEmployee(t *testing.T) {
	svc, r := setupRouter(t)
	svc.EXPECT().GetByEmployee(gomock.Any(), uint(11)).Return(profile.ProfileResponse{}, profileerrors.ErrProfileNotFound)

	w := serve(r, http.MethodGet, "/api/perfiles/empleado/11", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileHandler_Update_BadBody(t *testing.T) {
	_, r := setupRouter(t)

	w := serve(r, http.MethodPut, "/api/perfiles/2", `{"habilidades":"Go"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
