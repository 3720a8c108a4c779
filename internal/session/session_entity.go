package session

import "time"

type Session struct {
	ID           uint         `gorm:"column:id_sesion;primaryKey;autoIncrement"`
	UserID       uint         `gorm:"column:id_usuario;not null;index"`
	User         *SessionUser `gorm:"foreignKey:UserID;references:ID"`
	Token        string       `gorm:"column:token_sesion;size:255;not null;uniqueIndex:uq_sesiones_token"`
	IPAddress    string       `gorm:"column:ip_origen;size:45"`
	UserAgent    string       `gorm:"column:user_agent"`
	StartedAt    time.Time    `gorm:"column:fecha_inicio;not null"`
	ExpiresAt    time.Time    `gorm:"column:fecha_expiracion;not null;index"`
	StoredActive bool         `gorm:"column:activa;not null;default:true"`
	Location     string       `gorm:"column:ubicacion;size:100"`
	Device       string       `gorm:"column:dispositivo;size:100"`
}

func (Session) TableName() string {
	return "sesiones"
}

// EffectiveActive is the only liveness answer callers should use. A
// session past its expiry is inactive even while the stored flag is still
// set; nothing sweeps expired rows.
func (s Session) EffectiveActive(now time.Time) bool {
	return s.StoredActive && now.Before(s.ExpiresAt)
}

// End closes the session. It reports false when it was already closed.
func (s *Session) End() bool {
	if !s.StoredActive {
		return false
	}
	s.StoredActive = false
	return true
}

type SessionUser struct {
	ID       uint   `gorm:"column:id_usuario;primaryKey"`
	Username string `gorm:"column:username"`
}

func (SessionUser) TableName() string {
	return "usuarios"
}
