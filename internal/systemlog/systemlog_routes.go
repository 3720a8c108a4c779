package systemlog

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	logs := r.Group("/logs")
	{
		logs.GET("", h.GetAll)
		logs.POST("", h.Create)
		logs.GET("/:id", h.GetByID)
	}
}
