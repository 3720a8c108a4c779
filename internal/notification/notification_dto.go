package notification

import "time"

type CreateNotificationRequest struct {
	UserID    uint       `json:"id_usuario" binding:"required"`
	Title     string     `json:"titulo" binding:"required,max=200"`
	Message   string     `json:"mensaje" binding:"required"`
	Type      string     `json:"tipo" binding:"omitempty,oneof=info warning error success"`
	Category  string     `json:"categoria" binding:"omitempty,oneof=sistema seguridad trabajo personal"`
	ActionURL *string    `json:"url_accion" binding:"omitempty,max=255"`
	ExpiresAt *time.Time `json:"fecha_expiracion"`
}

type UpdateNotificationRequest struct {
	Title     *string    `json:"titulo" binding:"omitempty,max=200"`
	Message   *string    `json:"mensaje"`
	Type      *string    `json:"tipo" binding:"omitempty,oneof=info warning error success"`
	Category  *string    `json:"categoria" binding:"omitempty,oneof=sistema seguridad trabajo personal"`
	Read      *bool      `json:"leida"`
	ActionURL *string    `json:"url_accion" binding:"omitempty,max=255"`
	ExpiresAt *time.Time `json:"fecha_expiracion"`
}

type NotificationFilter struct {
	UserID   *uint
	Read     *bool
	Category *string
	Type     *string
}

type NotificationResponse struct {
	ID        uint       `json:"id_notificacion"`
	UserID    uint       `json:"id_usuario"`
	Username  string     `json:"usuario_nombre,omitempty"`
	Title     string     `json:"titulo"`
	Message   string     `json:"mensaje"`
	Type      string     `json:"tipo"`
	Category  string     `json:"categoria"`
	Read      bool       `json:"leida"`
	ReadAt    *time.Time `json:"fecha_lectura"`
	ActionURL *string    `json:"url_accion"`
	CreatedAt time.Time  `json:"fecha_creacion"`
	ExpiresAt *time.Time `json:"fecha_expiracion"`
	Expired   bool       `json:"expirada"`
}

type MarkAllReadResponse struct {
	UserID  uint  `json:"id_usuario"`
	Updated int64 `json:"actualizadas"`
}
