package systemlog

import (
	"time"

	"gorm.io/datatypes"
)

const (
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelCritical = "CRITICAL"
)

func ValidLevel(l string) bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical:
		return true
	}
	return false
}

// Entry is an append-only log row. UserID is nulled, not deleted, when the
// user goes away.
type Entry struct {
	ID        uint              `gorm:"column:id_log;primaryKey;autoIncrement"`
	Level     string            `gorm:"column:nivel;size:10;not null;index"`
	Message   string            `gorm:"column:mensaje;not null"`
	Module    *string           `gorm:"column:modulo;size:50;index"`
	UserID    *uint             `gorm:"column:id_usuario;index"`
	User      *LogUser          `gorm:"foreignKey:UserID;references:ID"`
	IPAddress *string           `gorm:"column:ip_origen;size:45"`
	UserAgent *string           `gorm:"column:user_agent"`
	Context   datatypes.JSONMap `gorm:"column:datos_contexto"`
	LoggedAt  time.Time         `gorm:"column:fecha_log;not null;index"`
}

func (Entry) TableName() string {
	return "log_sistema"
}

type LogUser struct {
	ID       uint   `gorm:"column:id_usuario;primaryKey"`
	Username string `gorm:"column:username"`
}

func (LogUser) TableName() string {
	return "usuarios"
}
