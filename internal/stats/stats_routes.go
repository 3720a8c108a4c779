package stats

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	stats := r.Group("/estadisticas")
	{
		stats.GET("/generales", h.General)
		stats.GET("/departamentos", h.ByDepartment)
	}
}
