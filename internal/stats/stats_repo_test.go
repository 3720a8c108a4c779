package stats_test

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/shared/testdb"
	"go-workforce/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var schema = []string{
	`CREATE TABLE departamentos (id_departamento INTEGER PRIMARY KEY, nombre TEXT NOT NULL, estado TEXT NOT NULL)`,
	`CREATE TABLE roles (id_rol INTEGER PRIMARY KEY, nombre TEXT NOT NULL, id_departamento INTEGER, estado TEXT NOT NULL)`,
	`CREATE TABLE empleados (id_empleado INTEGER PRIMARY KEY, id_departamento INTEGER, estado TEXT NOT NULL)`,
	`CREATE TABLE usuarios (id_usuario INTEGER PRIMARY KEY, estado TEXT NOT NULL)`,
	`CREATE TABLE sesiones (id_sesion INTEGER PRIMARY KEY, activa BOOLEAN NOT NULL, fecha_expiracion DATETIME NOT NULL)`,
	`CREATE TABLE notificaciones (id_notificacion INTEGER PRIMARY KEY, leida BOOLEAN NOT NULL)`,
}

func openStatsDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testdb.Open(t)
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestStatsRepository_ByDepartment(t *testing.T) {
	ctx := context.Background()
	db := openStatsDB(t)
	repo := stats.NewRepository(db)

	require.NoError(t, db.Exec(`INSERT INTO departamentos VALUES (1, 'Operaciones', 'activo'), (2, 'IT', 'activo'), (3, 'Archivo', 'inactivo')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO empleados (id_departamento, estado) VALUES
		(2, 'activo'), (2, 'activo'), (2, 'inactivo'), (2, 'suspendido'),
		(1, 'activo'), (NULL, 'activo')`).Error)

	got, err := repo.ByDepartment(ctx)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, stats.DepartmentStats{DepartmentID: 3, Name: "Archivo"}, got[0])
	assert.Equal(t, stats.DepartmentStats{DepartmentID: 2, Name: "IT", Total: 4, Active: 2, Inactive: 1, Suspended: 1}, got[1])
	assert.Equal(t, stats.DepartmentStats{DepartmentID: 1, Name: "Operaciones", Total: 1, Active: 1}, got[2])
}

func TestStatsRepository_General(t *testing.T) {
	ctx := context.Background()
	db := openStatsDB(t)
	repo := stats.NewRepository(db)
	now := time.Date(2026, 7, 3, 9, 0, 0, 0, time.UTC)

	t.Run("empty database is all zeros", func(t *testing.T) {
		got, err := repo.General(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, stats.GeneralStats{}, got)
	})

	t.Run("counts only live rows", func(t *testing.T) {
		require.NoError(t, db.Exec(`INSERT INTO departamentos VALUES (1, 'IT', 'activo'), (2, 'Archivo', 'inactivo')`).Error)
		require.NoError(t, db.Exec(`INSERT INTO roles (nombre, id_departamento, estado) VALUES ('Dev', 1, 'activo'), ('QA', 1, 'activo'), ('Viejo', 2, 'inactivo')`).Error)
		require.NoError(t, db.Exec(`INSERT INTO empleados (id_departamento, estado) VALUES (1, 'activo'), (1, 'suspendido'), (NULL, 'inactivo')`).Error)
		require.NoError(t, db.Exec(`INSERT INTO usuarios (estado) VALUES ('activo'), ('bloqueado')`).Error)
		require.NoError(t, db.Exec(`INSERT INTO sesiones (activa, fecha_expiracion) VALUES (?, ?), (?, ?), (?, ?)`,
			true, now.Add(time.Hour),
			true, now.Add(-time.Hour),
			false, now.Add(time.Hour),
		).Error)
		require.NoError(t, db.Exec(`INSERT INTO notificaciones (leida) VALUES (?), (?), (?)`, false, false, true).Error)

		got, err := repo.General(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, stats.GeneralStats{
			TotalEmployees:      3,
			ActiveEmployees:     1,
			TotalDepartments:    1,
			TotalRoles:          2,
			ActiveUsers:         1,
			ActiveSessions:      1,
			UnreadNotifications: 2,
		}, got)
	})
}
