package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dates travel as YYYY-MM-DD strings.
type CreateEmployeeRequest struct {
	DocumentNumber string           `json:"numero_documento" binding:"required,max=20"`
	DocumentType   string           `json:"tipo_documento" binding:"omitempty,oneof=CC CE PP"`
	FirstNames     string           `json:"nombres" binding:"required,max=100"`
	LastNames      string           `json:"apellidos" binding:"required,max=100"`
	Email          string           `json:"email" binding:"required,email,max=150"`
	Phone          string           `json:"telefono" binding:"max=20"`
	BirthDate      string           `json:"fecha_nacimiento"`
	Address        string           `json:"direccion"`
	City           string           `json:"ciudad" binding:"max=100"`
	DepartmentID   uint             `json:"id_departamento" binding:"required"`
	RoleID         uint             `json:"id_rol" binding:"required"`
	HireDate       string           `json:"fecha_ingreso" binding:"required"`
	DepartureDate  string           `json:"fecha_salida"`
	Salary         *decimal.Decimal `json:"salario"`
	Photo          string           `json:"foto_perfil" binding:"max=255"`
	Status         string           `json:"estado" binding:"omitempty,oneof=activo inactivo suspendido"`
}

// UpdateEmployeeRequest leaves nil fields unchanged. An empty fecha_salida
// clears the departure date.
type UpdateEmployeeRequest struct {
	DocumentNumber *string          `json:"numero_documento" binding:"omitempty,max=20"`
	DocumentType   *string          `json:"tipo_documento" binding:"omitempty,oneof=CC CE PP"`
	FirstNames     *string          `json:"nombres" binding:"omitempty,max=100"`
	LastNames      *string          `json:"apellidos" binding:"omitempty,max=100"`
	Email          *string          `json:"email" binding:"omitempty,email,max=150"`
	Phone          *string          `json:"telefono" binding:"omitempty,max=20"`
	BirthDate      *string          `json:"fecha_nacimiento"`
	Address        *string          `json:"direccion"`
	City           *string          `json:"ciudad" binding:"omitempty,max=100"`
	DepartmentID   *uint            `json:"id_departamento"`
	RoleID         *uint            `json:"id_rol"`
	HireDate       *string          `json:"fecha_ingreso"`
	DepartureDate  *string          `json:"fecha_salida"`
	Salary         *decimal.Decimal `json:"salario"`
	Photo          *string          `json:"foto_perfil" binding:"omitempty,max=255"`
	Status         *string          `json:"estado" binding:"omitempty,oneof=activo inactivo suspendido"`
}

type EmployeeFilter struct {
	Status       *string
	DepartmentID *uint
	RoleID       *uint
}

type EmployeeResponse struct {
	ID             uint             `json:"id_empleado"`
	DocumentNumber string           `json:"numero_documento"`
	DocumentType   string           `json:"tipo_documento"`
	FirstNames     string           `json:"nombres"`
	LastNames      string           `json:"apellidos"`
	FullName       string           `json:"nombre_completo"`
	Email          string           `json:"email"`
	Phone          string           `json:"telefono"`
	BirthDate      *string          `json:"fecha_nacimiento"`
	Address        string           `json:"direccion"`
	City           string           `json:"ciudad"`
	DepartmentID   uint             `json:"id_departamento"`
	DepartmentName string           `json:"departamento_nombre,omitempty"`
	RoleID         uint             `json:"id_rol"`
	RoleName       string           `json:"rol_nombre,omitempty"`
	HireDate       string           `json:"fecha_ingreso"`
	DepartureDate  *string          `json:"fecha_salida"`
	Salary         *decimal.Decimal `json:"salario"`
	Photo          string           `json:"foto_perfil"`
	Status         string           `json:"estado"`
	CreatedAt      time.Time        `json:"fecha_creacion"`
	UpdatedAt      time.Time        `json:"fecha_modificacion"`
}
