package department

import (
	"time"
)

const (
	StatusActive   = "activo"
	StatusInactive = "inactivo"
)

func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}

type Department struct {
	ID          uint      `gorm:"column:id_departamento;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:nombre;size:50;not null;uniqueIndex:uq_departamentos_nombre"`
	Description string    `gorm:"column:descripcion;type:text"`
	Status      string    `gorm:"column:estado;size:10;not null"`
	CreatedAt   time.Time `gorm:"column:fecha_creacion;not null"`
}

func (Department) TableName() string {
	return "departamentos"
}
