package stats_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/stats"
	mock_stats "go-workforce/internal/stats/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStatsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := mock_stats.NewMockService(gomock.NewController(t))
	r := gin.New()
	stats.RegisterRoutes(r.Group("/api"), stats.NewHandler(svc))

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	t.Run("general", func(t *testing.T) {
		svc.EXPECT().General(gomock.Any()).Return(stats.GeneralStats{TotalEmployees: 7, ActiveSessions: 2}, nil)

		w := get("/api/estadisticas/generales")

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, w.Body.String(), `"total_empleados":7`)
		assert.Contains(t, w.Body.String(), `"sesiones_activas":2`)
	})

	t.Run("departments", func(t *testing.T) {
		svc.EXPECT().ByDepartment(gomock.Any()).Return([]stats.DepartmentStats{
			{DepartmentID: 2, Name: "IT", Total: 4, Active: 2, Inactive: 1, Suspended: 1},
		}, nil)

		w := get("/api/estadisticas/departamentos")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"empleados_suspendidos":1`)
	})

	t.Run("failure", func(t *testing.T) {
		svc.EXPECT().General(gomock.Any()).Return(stats.GeneralStats{}, apperror.Internal(errors.New("boom")))

		w := get("/api/estadisticas/generales")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
