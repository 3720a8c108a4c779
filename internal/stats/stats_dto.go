package stats

type GeneralStats struct {
	TotalEmployees      int64 `json:"total_empleados" gorm:"column:total_empleados"`
	ActiveEmployees     int64 `json:"empleados_activos" gorm:"column:empleados_activos"`
	TotalDepartments    int64 `json:"total_departamentos" gorm:"column:total_departamentos"`
	TotalRoles          int64 `json:"total_roles" gorm:"column:total_roles"`
	ActiveUsers         int64 `json:"usuarios_activos" gorm:"column:usuarios_activos"`
	ActiveSessions      int64 `json:"sesiones_activas" gorm:"column:sesiones_activas"`
	UnreadNotifications int64 `json:"notificaciones_no_leidas" gorm:"column:notificaciones_no_leidas"`
}

type DepartmentStats struct {
	DepartmentID uint   `json:"id_departamento" gorm:"column:id_departamento"`
	Name         string `json:"nombre" gorm:"column:nombre"`
	Total        int64  `json:"total_empleados" gorm:"column:total_empleados"`
	Active       int64  `json:"empleados_activos" gorm:"column:empleados_activos"`
	Inactive     int64  `json:"empleados_inactivos" gorm:"column:empleados_inactivos"`
	Suspended    int64  `json:"empleados_suspendidos" gorm:"column:empleados_suspendidos"`
}
