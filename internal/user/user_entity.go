package user

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive   = "activo"
	StatusInactive = "inactivo"
	StatusLocked   = "bloqueado"
)

// ValidEditableStatus reports whether s may be set through create or
// update. bloqueado is reachable only through Lock.
func ValidEditableStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

func ValidStatus(s string) bool {
	return ValidEditableStatus(s) || s == StatusLocked
}

// Settings is the per-user preferences document.
type Settings struct {
	Theme              string `json:"tema,omitempty"`
	Language           string `json:"idioma,omitempty"`
	Timezone           string `json:"zona_horaria,omitempty"`
	EmailNotifications *bool  `json:"notificaciones_email,omitempty"`
	ItemsPerPage       int    `json:"elementos_por_pagina,omitempty"`
}

type User struct {
	ID             uint                         `gorm:"column:id_usuario;primaryKey;autoIncrement"`
	EmployeeID     uint                         `gorm:"column:id_empleado;not null;index"`
	Employee       *UserEmployee                `gorm:"foreignKey:EmployeeID;references:ID"`
	Username       string                       `gorm:"column:username;size:50;not null;uniqueIndex:uq_usuarios_username"`
	PasswordHash   string                       `gorm:"column:password_hash;size:255;not null"`
	LastAccess     *time.Time                   `gorm:"column:ultimo_acceso"`
	FailedAttempts int                          `gorm:"column:intentos_fallidos;not null;default:0"`
	Locked         bool                         `gorm:"column:bloqueado;not null;default:false"`
	LockedAt       *time.Time                   `gorm:"column:fecha_bloqueo"`
	TwoFactorToken *string                      `gorm:"column:token_2fa;size:100"`
	RecoveryToken  *string                      `gorm:"column:token_recuperacion;size:100"`
	TokenExpiresAt *time.Time                   `gorm:"column:fecha_expiracion_token"`
	Settings       datatypes.JSONType[Settings] `gorm:"column:configuracion_usuario"`
	Status         string                       `gorm:"column:estado;size:12;not null;index"`
	CreatedAt      time.Time                    `gorm:"column:fecha_creacion;not null"`
	UpdatedAt      time.Time                    `gorm:"column:fecha_modificacion;not null;autoUpdateTime:false"`
}

func (User) TableName() string {
	return "usuarios"
}

// Lock blocks the account. Sessions are left alone.
func (u *User) Lock(now time.Time) {
	u.Locked = true
	u.LockedAt = &now
	u.Status = StatusLocked
}

// Unlock clears the lock. The failed attempt counter is kept.
func (u *User) Unlock() {
	u.Locked = false
	u.LockedAt = nil
	if u.Status == StatusLocked {
		u.Status = StatusActive
	}
}

type UserEmployee struct {
	ID         uint   `gorm:"column:id_empleado;primaryKey"`
	FirstNames string `gorm:"column:nombres"`
	LastNames  string `gorm:"column:apellidos"`
	Email      string `gorm:"column:email"`
}

func (UserEmployee) TableName() string {
	return "empleados"
}

func (e UserEmployee) FullName() string {
	return strings.TrimSpace(e.FirstNames + " " + e.LastNames)
}
