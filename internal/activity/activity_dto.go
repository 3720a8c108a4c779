package activity

import "time"

type CreateActivityRequest struct {
	UserID      uint           `json:"id_usuario" binding:"required"`
	Action      string         `json:"accion" binding:"required,max=100"`
	Description *string        `json:"descripcion"`
	Module      *string        `json:"modulo" binding:"omitempty,max=50"`
	IPAddress   *string        `json:"ip_origen" binding:"omitempty,max=45"`
	Extra       map[string]any `json:"datos_adicionales"`
}

type ActivityFilter struct {
	UserID *uint
	Module *string
}

type ActivityResponse struct {
	ID          uint           `json:"id_actividad"`
	UserID      uint           `json:"id_usuario"`
	Username    string         `json:"usuario_nombre,omitempty"`
	Action      string         `json:"accion"`
	Description *string        `json:"descripcion"`
	Module      *string        `json:"modulo"`
	IPAddress   *string        `json:"ip_origen"`
	Extra       map[string]any `json:"datos_adicionales"`
	OccurredAt  time.Time      `json:"fecha_actividad"`
}
