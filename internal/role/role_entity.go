package role

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive   = "activo"
	StatusInactive = "inactivo"
)

const (
	AccessBasic        = "basico"
	AccessIntermediate = "intermedio"
	AccessAdvanced     = "avanzado"
	AccessAdmin        = "admin"
)

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

func ValidAccessLevel(s string) bool {
	switch s {
	case AccessBasic, AccessIntermediate, AccessAdvanced, AccessAdmin:
		return true
	}
	return false
}

// PermissionSet maps a system capability ("dashboard", "reportes") to
// whether the role holds it.
type PermissionSet map[string]bool

type Role struct {
	ID           uint                              `gorm:"column:id_rol;primaryKey;autoIncrement"`
	Name         string                            `gorm:"column:nombre;size:100;not null;uniqueIndex:uq_roles_departamento_nombre,priority:2"`
	DepartmentID uint                              `gorm:"column:id_departamento;not null;index;uniqueIndex:uq_roles_departamento_nombre,priority:1"`
	Department   *RoleDepartment                   `gorm:"foreignKey:DepartmentID;references:ID"`
	Description  string                            `gorm:"column:descripcion;type:text"`
	AccessLevel  string                            `gorm:"column:nivel_acceso;size:12;not null"`
	Permissions  datatypes.JSONType[PermissionSet] `gorm:"column:permisos_sistema"`
	Status       string                            `gorm:"column:estado;size:10;not null"`
	CreatedAt    time.Time                         `gorm:"column:fecha_creacion;not null"`
}

func (Role) TableName() string {
	return "roles"
}

// RoleDepartment is the slice of the department row a role response needs.
type RoleDepartment struct {
	ID   uint   `gorm:"column:id_departamento;primaryKey"`
	Name string `gorm:"column:nombre"`
}

func (RoleDepartment) TableName() string {
	return "departamentos"
}
