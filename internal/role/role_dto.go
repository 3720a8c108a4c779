package role

import "time"

type CreateRoleRequest struct {
	Name         string          `json:"nombre" binding:"required,max=100"`
	DepartmentID uint            `json:"id_departamento" binding:"required"`
	Description  string          `json:"descripcion"`
	AccessLevel  string          `json:"nivel_acceso" binding:"omitempty,oneof=basico intermedio avanzado admin"`
	Permissions  map[string]bool `json:"permisos_sistema"`
	Status       string          `json:"estado" binding:"omitempty,oneof=activo inactivo"`
}

type UpdateRoleRequest struct {
	Name         *string          `json:"nombre" binding:"omitempty,max=100"`
	DepartmentID *uint            `json:"id_departamento"`
	Description  *string          `json:"descripcion"`
	AccessLevel  *string          `json:"nivel_acceso" binding:"omitempty,oneof=basico intermedio avanzado admin"`
	Permissions  *map[string]bool `json:"permisos_sistema"`
	Status       *string          `json:"estado" binding:"omitempty,oneof=activo inactivo"`
}

type RoleFilter struct {
	Status       *string
	DepartmentID *uint
	AccessLevel  *string
}

type RoleResponse struct {
	ID             uint            `json:"id_rol"`
	Name           string          `json:"nombre"`
	DepartmentID   uint            `json:"id_departamento"`
	DepartmentName string          `json:"departamento_nombre,omitempty"`
	Description    string          `json:"descripcion"`
	AccessLevel    string          `json:"nivel_acceso"`
	Permissions    map[string]bool `json:"permisos_sistema"`
	Status         string          `json:"estado"`
	CreatedAt      time.Time       `json:"fecha_creacion"`
}
