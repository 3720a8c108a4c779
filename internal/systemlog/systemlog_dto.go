package systemlog

import "time"

type CreateLogRequest struct {
	Level     string         `json:"nivel" binding:"required,oneof=DEBUG INFO WARNING ERROR CRITICAL"`
	Message   string         `json:"mensaje" binding:"required"`
	Module    *string        `json:"modulo" binding:"omitempty,max=50"`
	UserID    *uint          `json:"id_usuario"`
	IPAddress *string        `json:"ip_origen" binding:"omitempty,max=45"`
	UserAgent *string        `json:"user_agent"`
	Context   map[string]any `json:"datos_contexto"`
}

type LogFilter struct {
	Level  *string
	Module *string
	UserID *uint
}

type LogResponse struct {
	ID        uint           `json:"id_log"`
	Level     string         `json:"nivel"`
	Message   string         `json:"mensaje"`
	Module    *string        `json:"modulo"`
	UserID    *uint          `json:"id_usuario"`
	Username  string         `json:"usuario_nombre,omitempty"`
	IPAddress *string        `json:"ip_origen"`
	UserAgent *string        `json:"user_agent"`
	Context   map[string]any `json:"datos_contexto"`
	LoggedAt  time.Time      `json:"fecha_log"`
}
