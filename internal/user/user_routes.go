package user

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/usuarios")
	{
		users.GET("", handler.GetAll)
		users.POST("", handler.Create)
		users.GET("/:id", handler.GetByID)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)

		users.POST("/:id/bloquear", handler.Lock)
		users.POST("/:id/desbloquear", handler.Unlock)
		users.POST("/:id/intento-fallido", handler.RecordFailedLogin)
	}
}
