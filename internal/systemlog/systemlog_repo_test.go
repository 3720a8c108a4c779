package systemlog_test

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/shared/testdb"
	"go-workforce/internal/systemlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSystemLogRepository(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &systemlog.LogUser{}, &systemlog.Entry{})
	repo := systemlog.NewRepository(db)

	u := &systemlog.LogUser{Username: "admin"}
	require.NoError(t, db.Create(u).Error)

	module := "empleados"
	base := time.Date(2026, 7, 2, 8, 0, 0, 0, time.UTC)
	entries := []*systemlog.Entry{
		{Level: systemlog.LevelInfo, Message: "alta", Module: &module, UserID: &u.ID, Context: datatypes.JSONMap{"id_empleado": 1}, LoggedAt: base},
		{Level: systemlog.LevelError, Message: "fallo", Module: &module, Context: datatypes.JSONMap{}, LoggedAt: base.Add(time.Minute)},
		{Level: systemlog.LevelInfo, Message: "inicio", Context: datatypes.JSONMap{}, LoggedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
	}

	t.Run("filters combine", func(t *testing.T) {
		info := systemlog.LevelInfo
		got, err := repo.FindAll(ctx, systemlog.LogFilter{Level: &info, Module: &module})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "alta", got[0].Message)
		require.NotNil(t, got[0].User)
		assert.Equal(t, "admin", got[0].User.Username)
	})

	t.Run("newest first", func(t *testing.T) {
		got, err := repo.FindAll(ctx, systemlog.LogFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "inicio", got[0].Message)
		assert.Nil(t, got[0].User)
	})

	t.Run("entry survives user removal with a null reference", func(t *testing.T) {
		require.NoError(t, db.Exec("UPDATE log_sistema SET id_usuario = NULL WHERE id_usuario = ?", u.ID).Error)
		require.NoError(t, db.Exec("DELETE FROM usuarios WHERE id_usuario = ?", u.ID).Error)

		got, err := repo.FindByID(ctx, entries[0].ID)
		require.NoError(t, err)
		assert.Nil(t, got.UserID)
		assert.Equal(t, "alta", got.Message)
	})
}
