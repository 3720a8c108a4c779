package session_test

import (
	"testing"
	"time"

	"go-workforce/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestSession_EffectiveActive(t *testing.T) {
	start := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	s := session.Session{StartedAt: start, ExpiresAt: start.Add(time.Hour), StoredActive: true}

	assert.True(t, s.EffectiveActive(start))
	assert.True(t, s.EffectiveActive(start.Add(59*time.Minute)))
	assert.False(t, s.EffectiveActive(start.Add(time.Hour)))
	assert.False(t, s.EffectiveActive(start.Add(2*time.Hour)))
	assert.True(t, s.StoredActive, "expiry never flips the stored flag")

	assert.True(t, s.End())
	assert.False(t, s.EffectiveActive(start))
	assert.False(t, s.End())
}
