package session

import "time"

type CreateSessionRequest struct {
	UserID    uint       `json:"id_usuario" binding:"required"`
	Token     string     `json:"token_sesion" binding:"max=255"`
	IPAddress string     `json:"ip_origen" binding:"max=45"`
	UserAgent string     `json:"user_agent"`
	StartedAt *time.Time `json:"fecha_inicio"`
	ExpiresAt *time.Time `json:"fecha_expiracion"`
	Location  string     `json:"ubicacion" binding:"max=100"`
	Device    string     `json:"dispositivo" binding:"max=100"`
}

// UpdateSessionRequest cannot reopen a session; End is one-way.
type UpdateSessionRequest struct {
	IPAddress *string    `json:"ip_origen" binding:"omitempty,max=45"`
	UserAgent *string    `json:"user_agent"`
	ExpiresAt *time.Time `json:"fecha_expiracion"`
	Location  *string    `json:"ubicacion" binding:"omitempty,max=100"`
	Device    *string    `json:"dispositivo" binding:"omitempty,max=100"`
}

// SessionFilter.Active matches on effective liveness, not the stored flag.
type SessionFilter struct {
	UserID *uint
	Active *bool
}

type SessionResponse struct {
	ID        uint      `json:"id_sesion"`
	UserID    uint      `json:"id_usuario"`
	Username  string    `json:"usuario_nombre,omitempty"`
	Token     string    `json:"token_sesion"`
	IPAddress string    `json:"ip_origen"`
	UserAgent string    `json:"user_agent"`
	StartedAt time.Time `json:"fecha_inicio"`
	ExpiresAt time.Time `json:"fecha_expiracion"`
	Active    bool      `json:"activa"`
	Location  string    `json:"ubicacion"`
	Device    string    `json:"dispositivo"`
}
