package role

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	roles := r.Group("/roles")
	{
		roles.GET("", h.GetAll)
		roles.POST("", h.Create)
		roles.GET("/departamento/:id", h.GetByDepartment)
		roles.GET("/:id", h.GetByID)
		roles.PUT("/:id", h.Update)
		roles.DELETE("/:id", h.Delete)
	}
}
