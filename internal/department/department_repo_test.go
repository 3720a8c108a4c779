package department_test

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/department"
	"go-workforce/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDepartmentRepository(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &department.Department{})
	repo := department.NewRepository(db)
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	it := &department.Department{Name: "IT", Status: department.StatusActive, CreatedAt: now}
	ops := &department.Department{Name: "Operaciones", Status: department.StatusInactive, CreatedAt: now}
	require.NoError(t, repo.Create(ctx, it))
	require.NoError(t, repo.Create(ctx, ops))
	assert.NotZero(t, it.ID)

	t.Run("FindAll orders by name and filters by estado", func(t *testing.T) {
		all, err := repo.FindAll(ctx, department.DepartmentFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "IT", all[0].Name)

		inactive := department.StatusInactive
		filtered, err := repo.FindAll(ctx, department.DepartmentFilter{Status: &inactive})
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, "Operaciones", filtered[0].Name)
	})

	t.Run("ExistsByName ignores the row being updated", func(t *testing.T) {
		taken, err := repo.ExistsByName(ctx, "IT", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.ExistsByName(ctx, "IT", it.ID)
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("unique constraint backs the name check", func(t *testing.T) {
		err := repo.Create(ctx, &department.Department{Name: "IT", Status: department.StatusActive, CreatedAt: now})
		assert.Error(t, err)
	})

	t.Run("FindByID missing row", func(t *testing.T) {
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Update persists changes", func(t *testing.T) {
		it.Description = "Tecnología"
		require.NoError(t, repo.Update(ctx, it))

		got, err := repo.FindByID(ctx, it.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tecnología", got.Description)
	})
}
