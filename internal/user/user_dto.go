package user

import "time"

type CreateUserRequest struct {
	EmployeeID uint      `json:"id_empleado" binding:"required"`
	Username   string    `json:"username" binding:"required,max=50"`
	Password   string    `json:"password" binding:"required,min=8,max=72"`
	Settings   *Settings `json:"configuracion_usuario"`
	Status     string    `json:"estado" binding:"omitempty,oneof=activo inactivo"`
}

type UpdateUserRequest struct {
	Username *string   `json:"username" binding:"omitempty,max=50"`
	Password *string   `json:"password" binding:"omitempty,min=8,max=72"`
	Settings *Settings `json:"configuracion_usuario"`
	Status   *string   `json:"estado" binding:"omitempty,oneof=activo inactivo"`
}

type UserFilter struct {
	Status     *string
	EmployeeID *uint
	Locked     *bool
}

type UserResponse struct {
	ID             uint       `json:"id_usuario"`
	EmployeeID     uint       `json:"id_empleado"`
	EmployeeName   string     `json:"empleado_nombre,omitempty"`
	EmployeeEmail  string     `json:"empleado_email,omitempty"`
	Username       string     `json:"username"`
	LastAccess     *time.Time `json:"ultimo_acceso"`
	FailedAttempts int        `json:"intentos_fallidos"`
	Locked         bool       `json:"bloqueado"`
	LockedAt       *time.Time `json:"fecha_bloqueo"`
	TokenExpiresAt *time.Time `json:"fecha_expiracion_token"`
	Settings       Settings   `json:"configuracion_usuario"`
	Status         string     `json:"estado"`
	CreatedAt      time.Time  `json:"fecha_creacion"`
	UpdatedAt      time.Time  `json:"fecha_modificacion"`
}
