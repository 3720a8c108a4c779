package role_test

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/department"
	"go-workforce/internal/role"
	"go-workforce/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRoleRepository(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &department.Department{}, &role.Role{})
	require.NoError(t, db.Exec("CREATE TABLE empleados (id_empleado INTEGER PRIMARY KEY, id_rol INTEGER)").Error)

	repo := role.NewRepository(db)
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	it := &department.Department{Name: "IT", Status: department.StatusActive, CreatedAt: now}
	require.NoError(t, db.Create(it).Error)

	dev := &role.Role{
		Name:         "Desarrollador",
		DepartmentID: it.ID,
		AccessLevel:  role.AccessAdvanced,
		Permissions:  datatypes.NewJSONType(role.PermissionSet{"dashboard": true, "desarrollo": true}),
		Status:       role.StatusActive,
		CreatedAt:    now,
	}
	old := &role.Role{
		Name:         "Operador",
		DepartmentID: it.ID,
		AccessLevel:  role.AccessBasic,
		Permissions:  datatypes.NewJSONType(role.PermissionSet{}),
		Status:       role.StatusInactive,
		CreatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, dev))
	require.NoError(t, repo.Create(ctx, old))

	t.Run("FindByID preloads department and decodes permissions", func(t *testing.T) {
		got, err := repo.FindByID(ctx, dev.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Department)
		assert.Equal(t, "IT", got.Department.Name)
		assert.True(t, got.Permissions.Data()["desarrollo"])
	})

	t.Run("FindActiveByDepartment skips inactive roles", func(t *testing.T) {
		roles, err := repo.FindActiveByDepartment(ctx, it.ID)
		require.NoError(t, err)
		require.Len(t, roles, 1)
		assert.Equal(t, "Desarrollador", roles[0].Name)

		none, err := repo.FindActiveByDepartment(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("DepartmentExists", func(t *testing.T) {
		ok, err := repo.DepartmentExists(ctx, it.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.DepartmentExists(ctx, 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("ExistsByName is scoped to the department", func(t *testing.T) {
		taken, err := repo.ExistsByName(ctx, it.ID, "Desarrollador", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.ExistsByName(ctx, it.ID+1, "Desarrollador", 0)
		require.NoError(t, err)
		assert.False(t, taken)

		taken, err = repo.ExistsByName(ctx, it.ID, "Desarrollador", dev.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("CountEmployees", func(t *testing.T) {
		require.NoError(t, db.Exec("INSERT INTO empleados (id_empleado, id_rol) VALUES (1, ?), (2, ?)", dev.ID, dev.ID).Error)

		n, err := repo.CountEmployees(ctx, dev.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("Update keeps the preloaded department untouched", func(t *testing.T) {
		got, err := repo.FindByID(ctx, old.ID)
		require.NoError(t, err)
		got.Status = role.StatusActive
		got.Department.Name = "ignored"
		require.NoError(t, repo.Update(ctx, got))

		var name string
		require.NoError(t, db.Raw("SELECT nombre FROM departamentos WHERE id_departamento = ?", it.ID).Scan(&name).Error)
		assert.Equal(t, "IT", name)
	})
}
