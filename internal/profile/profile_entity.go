package profile

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type WorkExperience struct {
	Company     string `json:"empresa"`
	Position    string `json:"cargo"`
	From        string `json:"desde,omitempty"`
	To          string `json:"hasta,omitempty"`
	Description string `json:"descripcion,omitempty"`
}

type Education struct {
	Institution string `json:"institucion"`
	Degree      string `json:"titulo,omitempty"`
	Year        int    `json:"anio,omitempty"`
}

type Certification struct {
	Name   string `json:"nombre"`
	Issuer string `json:"entidad,omitempty"`
	Year   int    `json:"anio,omitempty"`
}

type Language struct {
	Name  string `json:"idioma"`
	Level string `json:"nivel,omitempty"`
}

// SocialLinks maps a network name (linkedin, github) to a profile URL.
type SocialLinks map[string]string

type NotificationPreferences struct {
	Email      bool     `json:"email"`
	Push       bool     `json:"push"`
	SMS        bool     `json:"sms"`
	Categories []string `json:"categorias,omitempty"`
}

type Profile struct {
	ID                uint                                        `gorm:"column:id_perfil;primaryKey;autoIncrement"`
	EmployeeID        uint                                        `gorm:"column:id_empleado;not null;uniqueIndex:uq_perfiles_empleado"`
	Employee          *ProfileEmployee                            `gorm:"foreignKey:EmployeeID;references:ID"`
	Bio               *string                                     `gorm:"column:biografia"`
	Skills            datatypes.JSONSlice[string]                 `gorm:"column:habilidades"`
	WorkExperience    datatypes.JSONSlice[WorkExperience]         `gorm:"column:experiencia_laboral"`
	Education         datatypes.JSONSlice[Education]              `gorm:"column:educacion"`
	Certifications    datatypes.JSONSlice[Certification]          `gorm:"column:certificaciones"`
	Languages         datatypes.JSONSlice[Language]               `gorm:"column:idiomas"`
	SocialLinks       datatypes.JSONType[SocialLinks]             `gorm:"column:redes_sociales"`
	NotificationPrefs datatypes.JSONType[NotificationPreferences] `gorm:"column:preferencias_notificaciones"`
	UpdatedAt         time.Time                                   `gorm:"column:fecha_actualizacion;not null;autoUpdateTime:false"`
}

func (Profile) TableName() string {
	return "perfiles_empleados"
}

type ProfileEmployee struct {
	ID         uint   `gorm:"column:id_empleado;primaryKey"`
	FirstNames string `gorm:"column:nombres"`
	LastNames  string `gorm:"column:apellidos"`
}

func (ProfileEmployee) TableName() string {
	return "empleados"
}

func (e ProfileEmployee) FullName() string {
	return strings.TrimSpace(e.FirstNames + " " + e.LastNames)
}
