package stats

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	statusActive    = "activo"
	statusInactive  = "inactivo"
	statusSuspended = "suspendido"
)

//go:generate mockgen -source=stats_repo.go -destination=mock/stats_repo_mock.go -package=mock
type Repository interface {
	General(ctx context.Context, now time.Time) (GeneralStats, error)
	ByDepartment(ctx context.Context) ([]DepartmentStats, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// General reads every counter in one statement so they describe the same
// snapshot.
func (r *repository) General(ctx context.Context, now time.Time) (GeneralStats, error) {
	var out GeneralStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM empleados) AS total_empleados,
			(SELECT COUNT(*) FROM empleados WHERE estado = ?) AS empleados_activos,
			(SELECT COUNT(*) FROM departamentos WHERE estado = ?) AS total_departamentos,
			(SELECT COUNT(*) FROM roles WHERE estado = ?) AS total_roles,
			(SELECT COUNT(*) FROM usuarios WHERE estado = ?) AS usuarios_activos,
			(SELECT COUNT(*) FROM sesiones WHERE activa = ? AND fecha_expiracion > ?) AS sesiones_activas,
			(SELECT COUNT(*) FROM notificaciones WHERE leida = ?) AS notificaciones_no_leidas`,
		statusActive, statusActive, statusActive, statusActive,
		true, now,
		false,
	).Scan(&out).Error
	return out, err
}

// ByDepartment is a single grouped pass. Departments without employees are
// kept with zero counts.
func (r *repository) ByDepartment(ctx context.Context) ([]DepartmentStats, error) {
	var out []DepartmentStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			d.id_departamento,
			d.nombre,
			COUNT(e.id_empleado) AS total_empleados,
			COALESCE(SUM(CASE WHEN e.estado = ? THEN 1 ELSE 0 END), 0) AS empleados_activos,
			COALESCE(SUM(CASE WHEN e.estado = ? THEN 1 ELSE 0 END), 0) AS empleados_inactivos,
			COALESCE(SUM(CASE WHEN e.estado = ? THEN 1 ELSE 0 END), 0) AS empleados_suspendidos
		FROM departamentos d
		LEFT JOIN empleados e ON e.id_departamento = d.id_departamento
		GROUP BY d.id_departamento, d.nombre
		ORDER BY d.nombre ASC`,
		statusActive, statusInactive, statusSuspended,
	).Scan(&out).Error
	return out, err
}
