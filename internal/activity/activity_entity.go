package activity

import (
	"time"

	"gorm.io/datatypes"
)

// Activity rows are append-only.
type Activity struct {
	ID          uint              `gorm:"column:id_actividad;primaryKey;autoIncrement"`
	UserID      uint              `gorm:"column:id_usuario;not null;index"`
	User        *ActivityUser     `gorm:"foreignKey:UserID;references:ID"`
	Action      string            `gorm:"column:accion;size:100;not null"`
	Description *string           `gorm:"column:descripcion"`
	Module      *string           `gorm:"column:modulo;size:50;index"`
	IPAddress   *string           `gorm:"column:ip_origen;size:45"`
	Extra       datatypes.JSONMap `gorm:"column:datos_adicionales"`
	OccurredAt  time.Time         `gorm:"column:fecha_actividad;not null;index"`
}

func (Activity) TableName() string {
	return "actividades_usuario"
}

type ActivityUser struct {
	ID       uint   `gorm:"column:id_usuario;primaryKey"`
	Username string `gorm:"column:username"`
}

func (ActivityUser) TableName() string {
	return "usuarios"
}
