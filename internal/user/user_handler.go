package user

import (
	"context"
	"net/http"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/request"
	"go-workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("user request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	employeeID, err := request.OptionalUint(c, "id_empleado")
	if err != nil {
		h.writeError(c, err)
		return
	}
	locked, err := request.OptionalBool(c, "bloqueado")
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp, err := h.svc.GetAll(c.Request.Context(), UserFilter{
		Status:     request.OptionalString(c, "estado"),
		EmployeeID: employeeID,
		Locked:     locked,
	})
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

	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
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

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}

	report, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "User deleted", report)
}

// action adapts a single-id state transition to a handler.
func (h *Handler) action(fn func(context.Context, uint) (UserResponse, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := request.ParseID(c, "id")
		if err != nil {
			h.writeError(c, err)
			return
		}

		resp, err := fn(c.Request.Context(), id)
		if err != nil {
			h.writeError(c, err)
			return
		}

		response.Success(c, http.StatusOK, resp)
	}
}

func (h *Handler) Lock(c *gin.Context) { h.action(h.svc.Lock)(c) }
func (h *Handler) Unlock(c *gin.Context) { h.action(h.svc.Unlock)(c) }
func (h *Handler) RecordFailedLogin(c *gin.Context) { h.action(h.svc.RecordFailedLogin)(c) }
