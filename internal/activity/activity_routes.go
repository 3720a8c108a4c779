package activity

import (
	"github.com/gin-gonic/gin"
)

// Activities are immutable: there is no PUT or DELETE.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	activities := r.Group("/actividades")
	{
		activities.GET("", h.GetAll)
		activities.POST("", h.Create)
		activities.GET("/:id", h.GetByID)
	}
}
