package session_test

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/session"
	"go-workforce/internal/shared/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t, &session.SessionUser{}, &session.Session{})
	require.NoError(t, db.Exec("ALTER TABLE usuarios ADD COLUMN ultimo_acceso DATETIME").Error)

	repo := session.NewRepository(db)
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	ana := &session.SessionUser{Username: "ana"}
	beto := &session.SessionUser{Username: "beto"}
	require.NoError(t, db.Create(ana).Error)
	require.NoError(t, db.Create(beto).Error)

	mk := func(userID uint, token string, start time.Time, ttl time.Duration, stored bool) *session.Session {
		s := &session.Session{
			UserID:       userID,
			Token:        token,
			StartedAt:    start,
			ExpiresAt:    start.Add(ttl),
			StoredActive: true,
		}
		require.NoError(t, repo.Create(ctx, s))
		if !stored {
			s.End()
			require.NoError(t, repo.Update(ctx, s))
		}
		return s
	}
	live := mk(ana.ID, "a-live", now.Add(-time.Hour), 8*time.Hour, true)
	expired := mk(ana.ID, "a-expired", now.Add(-10*time.Hour), 8*time.Hour, true)
	closed := mk(beto.ID, "b-closed", now.Add(-time.Hour), 8*time.Hour, false)

	t.Run("active filter uses effective liveness", func(t *testing.T) {
		yes, no := true, false

		got, err := repo.FindAll(ctx, session.SessionFilter{Active: &yes}, now)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, live.ID, got[0].ID)

		got, err = repo.FindAll(ctx, session.SessionFilter{Active: &no}, now)
		require.NoError(t, err)
		ids := []uint{}
		for _, s := range got {
			ids = append(ids, s.ID)
		}
		assert.ElementsMatch(t, []uint{expired.ID, closed.ID}, ids)
	})

	t.Run("user filter and preload", func(t *testing.T) {
		got, err := repo.FindAll(ctx, session.SessionFilter{UserID: &ana.ID}, now)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, live.ID, got[0].ID, "newest first")
		require.NotNil(t, got[0].User)
		assert.Equal(t, "ana", got[0].User.Username)
	})

	t.Run("stored flag survives expiry", func(t *testing.T) {
		got, err := repo.FindByID(ctx, expired.ID)
		require.NoError(t, err)
		assert.True(t, got.StoredActive)
		assert.False(t, got.EffectiveActive(now))
	})

	t.Run("TouchLastAccess", func(t *testing.T) {
		require.NoError(t, repo.TouchLastAccess(ctx, beto.ID, now))

		var n int64
		require.NoError(t, db.Table("usuarios").Where("ultimo_acceso IS NOT NULL").Count(&n).Error)
		assert.Equal(t, int64(1), n)
	})

	t.Run("token lookups", func(t *testing.T) {
		taken, err := repo.ExistsByToken(ctx, "a-live")
		require.NoError(t, err)
		assert.True(t, taken)

		assert.Error(t, repo.Create(ctx, &session.Session{UserID: ana.ID, Token: "a-live", StartedAt: now, ExpiresAt: now.Add(time.Hour)}))
	})
}
