package session

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	sessions := r.Group("/sesiones")
	{
		sessions.GET("", h.GetAll)
		sessions.POST("", h.Create)
		sessions.GET("/:id", h.GetByID)
		sessions.PUT("/:id", h.Update)
		sessions.DELETE("/:id", h.Delete)
		sessions.POST("/:id/cerrar", h.End)
	}
}
