package profile

import "time"

type CreateProfileRequest struct {
	EmployeeID        uint                     `json:"id_empleado" binding:"required"`
	Bio               *string                  `json:"biografia"`
	Skills            []string                 `json:"habilidades"`
	WorkExperience    []WorkExperience         `json:"experiencia_laboral"`
	Education         []Education              `json:"educacion"`
	Certifications    []Certification          `json:"certificaciones"`
	Languages         []Language               `json:"idiomas"`
	SocialLinks       SocialLinks              `json:"redes_sociales"`
	NotificationPrefs *NotificationPreferences `json:"preferencias_notificaciones"`
}

// UpdateProfileRequest replaces each list that is present; absent lists
// are kept.
type UpdateProfileRequest struct {
	Bio               *string                  `json:"biografia"`
	Skills            *[]string                `json:"habilidades"`
	WorkExperience    *[]WorkExperience        `json:"experiencia_laboral"`
	Education         *[]Education             `json:"educacion"`
	Certifications    *[]Certification         `json:"certificaciones"`
	Languages         *[]Language              `json:"idiomas"`
	SocialLinks       *SocialLinks             `json:"redes_sociales"`
	NotificationPrefs *NotificationPreferences `json:"preferencias_notificaciones"`
}

type ProfileFilter struct {
	EmployeeID *uint
}

type ProfileResponse struct {
	ID                uint                    `json:"id_perfil"`
	EmployeeID        uint                    `json:"id_empleado"`
	EmployeeName      string                  `json:"empleado_nombre,omitempty"`
	Bio               *string                 `json:"biografia"`
	Skills            []string                `json:"habilidades"`
	WorkExperience    []WorkExperience        `json:"experiencia_laboral"`
	Education         []Education             `json:"educacion"`
	Certifications    []Certification         `json:"certificaciones"`
	Languages         []Language              `json:"idiomas"`
	SocialLinks       SocialLinks             `json:"redes_sociales"`
	NotificationPrefs NotificationPreferences `json:"preferencias_notificaciones"`
	UpdatedAt         time.Time               `json:"fecha_actualizacion"`
}
