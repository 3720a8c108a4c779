package employee

import (
	"strings"
	"time"

	employeeerrors "go-workforce/internal/employee/errors"

	"github.com/shopspring/decimal"
)

const (
	StatusActive    = "activo"
	StatusInactive  = "inactivo"
	StatusSuspended = "suspendido"
)

const (
	DocumentCC = "CC"
	DocumentCE = "CE"
	DocumentPP = "PP"
)

// SearchLimit caps the number of rows returned by a search.
const SearchLimit = 20

const dateLayout = "2006-01-02"

func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

func ValidDocumentType(s string) bool {
	switch s {
	case DocumentCC, DocumentCE, DocumentPP:
		return true
	}
	return false
}

type Employee struct {
	ID             uint                `gorm:"column:id_empleado;primaryKey;autoIncrement"`
	DocumentNumber string              `gorm:"column:numero_documento;size:20;not null;uniqueIndex:uq_empleados_numero_documento"`
	DocumentType   string              `gorm:"column:tipo_documento;size:2;not null"`
	FirstNames     string              `gorm:"column:nombres;size:100;not null"`
	LastNames      string              `gorm:"column:apellidos;size:100;not null"`
	Email          string              `gorm:"column:email;size:150;not null;uniqueIndex:uq_empleados_email"`
	Phone          string              `gorm:"column:telefono;size:20"`
	BirthDate      *time.Time          `gorm:"column:fecha_nacimiento;type:date"`
	Address        string              `gorm:"column:direccion;type:text"`
	City           string              `gorm:"column:ciudad;size:100"`
	DepartmentID   uint                `gorm:"column:id_departamento;not null;index"`
	Department     *EmployeeDepartment `gorm:"foreignKey:DepartmentID;references:ID"`
	RoleID         uint                `gorm:"column:id_rol;not null;index"`
	Role           *EmployeeRole       `gorm:"foreignKey:RoleID;references:ID"`
	HireDate       time.Time           `gorm:"column:fecha_ingreso;type:date;not null"`
	DepartureDate  *time.Time          `gorm:"column:fecha_salida;type:date"`
	Salary         decimal.NullDecimal `gorm:"column:salario;type:decimal(12,2)"`
	Photo          string              `gorm:"column:foto_perfil;size:255"`
	Status         string              `gorm:"column:estado;size:12;not null;index"`
	CreatedAt      time.Time           `gorm:"column:fecha_creacion;not null"`
	UpdatedAt      time.Time           `gorm:"column:fecha_modificacion;not null;autoUpdateTime:false"`
}

func (Employee) TableName() string {
	return "empleados"
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstNames + " " + e.LastNames)
}

// Deactivate marks the employee inactive with today as departure date. It
// reports false without touching the row when the employee is already
// inactive.
func (e *Employee) Deactivate(today time.Time) (bool, error) {
	if e.Status == StatusInactive {
		return false, nil
	}
	if today.Before(dateOnly(e.HireDate)) {
		return false, employeeerrors.ErrDepartureBeforeHire
	}
	e.Status = StatusInactive
	e.DepartureDate = &today
	return true, nil
}

type EmployeeDepartment struct {
	ID   uint   `gorm:"column:id_departamento;primaryKey"`
	Name string `gorm:"column:nombre"`
}

func (EmployeeDepartment) TableName() string {
	return "departamentos"
}

type EmployeeRole struct {
	ID           uint   `gorm:"column:id_rol;primaryKey"`
	Name         string `gorm:"column:nombre"`
	DepartmentID uint   `gorm:"column:id_departamento"`
}

func (EmployeeRole) TableName() string {
	return "roles"
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
