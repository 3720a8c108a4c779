package profile

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	profiles := r.Group("/perfiles")
	{
		profiles.GET("", h.GetAll)
		profiles.POST("", h.Create)
		profiles.GET("/empleado/:id", h.GetByEmployee)
		profiles.GET("/:id", h.GetByID)
		profiles.PUT("/:id", h.Update)
		profiles.DELETE("/:id", h.Delete)
	}
}
