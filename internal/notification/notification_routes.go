package notification

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	notifications := r.Group("/notificaciones")
	{
		notifications.GET("", h.GetAll)
		notifications.POST("", h.Create)
		notifications.GET("/usuario/:id", h.GetByUser)
		notifications.POST("/usuario/:id/marcar-leidas", h.MarkAllRead)
		notifications.GET("/:id", h.GetByID)
		notifications.PUT("/:id", h.Update)
		notifications.DELETE("/:id", h.Delete)
		notifications.POST("/:id/marcar-leida", h.MarkRead)
	}
}
