package employee

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	employees := r.Group("/empleados")
	{
		employees.GET("", h.GetAll)
		employees.POST("", h.Create)
		employees.GET("/buscar", h.Search)
		employees.GET("/:id", h.GetByID)
		employees.PUT("/:id", h.Update)
		employees.DELETE("/:id", h.Deactivate)
		employees.DELETE("/:id/permanente", h.Delete)
	}
}
