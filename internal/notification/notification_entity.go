package notification

import "time"

const (
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeError   = "error"
	TypeSuccess = "success"

	CategorySystem   = "sistema"
	CategorySecurity = "seguridad"
	CategoryWork     = "trabajo"
	CategoryPersonal = "personal"
)

func ValidType(t string) bool {
	switch t {
	case TypeInfo, TypeWarning, TypeError, TypeSuccess:
		return true
	}
	return false
}

func ValidCategory(c string) bool {
	switch c {
	case CategorySystem, CategorySecurity, CategoryWork, CategoryPersonal:
		return true
	}
	return false
}

type Notification struct {
	ID        uint              `gorm:"column:id_notificacion;primaryKey;autoIncrement"`
	UserID    uint              `gorm:"column:id_usuario;not null;index"`
	User      *NotificationUser `gorm:"foreignKey:UserID;references:ID"`
	Title     string            `gorm:"column:titulo;size:200;not null"`
	Message   string            `gorm:"column:mensaje;not null"`
	Type      string            `gorm:"column:tipo;size:10;not null;default:info"`
	Category  string            `gorm:"column:categoria;size:12;not null;default:sistema"`
	Read      bool              `gorm:"column:leida;not null;default:false;index"`
	ReadAt    *time.Time        `gorm:"column:fecha_lectura"`
	ActionURL *string           `gorm:"column:url_accion;size:255"`
	CreatedAt time.Time         `gorm:"column:fecha_creacion;not null"`
	ExpiresAt *time.Time        `gorm:"column:fecha_expiracion"`
}

func (Notification) TableName() string {
	return "notificaciones"
}

// MarkRead keeps leida and fecha_lectura in step. A notification that is
// already read keeps its first read time and MarkRead reports false.
func (n *Notification) MarkRead(now time.Time) bool {
	if n.Read {
		return false
	}
	n.Read = true
	n.ReadAt = &now
	return true
}

func (n *Notification) MarkUnread() {
	n.Read = false
	n.ReadAt = nil
}

// Expired is informational only; expired notifications stay listed.
func (n Notification) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && !now.Before(*n.ExpiresAt)
}

type NotificationUser struct {
	ID       uint   `gorm:"column:id_usuario;primaryKey"`
	Username string `gorm:"column:username"`
}

func (NotificationUser) TableName() string {
	return "usuarios"
}
