package department

import "time"

type CreateDepartmentRequest struct {
	Name        string `json:"nombre" binding:"required,max=50"`
	Description string `json:"descripcion"`
	Status      string `json:"estado" binding:"omitempty,oneof=activo inactivo"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"nombre" binding:"omitempty,max=50"`
	Description *string `json:"descripcion"`
	Status      *string `json:"estado" binding:"omitempty,oneof=activo inactivo"`
}

// DepartmentFilter holds optional exact-match filters; nil means "any".
type DepartmentFilter struct {
	Status *string
}

func (f DepartmentFilter) IsZero() bool {
	return f.Status == nil
}

type DepartmentResponse struct {
	ID          uint      `json:"id_departamento"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Status      string    `json:"estado"`
	CreatedAt   time.Time `json:"fecha_creacion"`
}
