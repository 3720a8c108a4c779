package notification

import (
	"net/http"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/request"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("notification request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	userID, err := request.OptionalUint(c, "id_usuario")
	if err != nil {
		h.writeError(c, err)
		return
	}
	read, err := request.OptionalBool(c, "leida")
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp, err := h.service.GetAll(c.Request.Context(), NotificationFilter{
		UserID:   userID,
		Read:     read,
		Category: request.OptionalString(c, "categoria"),
		Type:     request.OptionalString(c, "tipo"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.List(c, http.StatusOK, resp, len(resp))
}

func (h *Handler) GetByUser(c *gin.Context) {
	userID, err := request.ParseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	read, err := request.OptionalBool(c, "leida")
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp, err := h.service.GetByUser(c.Request.Context(), userID, read)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.List(c, http.StatusOK, resp, len(resp))
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}

	var req UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp, err := h.service.MarkRead(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Notification marked as read", resp)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	userID, err := request.ParseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Notifications marked as read", resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}

	report, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Notification deleted", report)
}
