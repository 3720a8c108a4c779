package session_test

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/relation"
	"go-workforce/internal/session"
	sessionerrors "go-workforce/internal/session/errors"
	mock_session "go-workforce/internal/session/mock"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

var now = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*mock_session.MockRepository, sqlmock.Sqlmock, *clock.Fixed, session.Service) {
	ctrl := gomock.NewController(t)
	db, sqlMock := testdb.NewMock(t)
	mockRepo := mock_session.NewMockRepository(ctrl)
	clk := &clock.Fixed{T: now}
	svc := session.NewService(db, mockRepo, clk, 8*time.Hour)
	return mockRepo, sqlMock, clk, svc
}

func openSession() *session.Session {
	return &session.Session{
		ID:           5,
		UserID:       3,
		User:         &session.SessionUser{ID: 3, Username: "lgomez"},
		Token:        "tok-1",
		StartedAt:    now.Add(-time.Hour),
		ExpiresAt:    now.Add(time.Hour),
		StoredActive: true,
	}
}

func TestSessionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults start, expiry and token and stamps ultimo_acceso", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, true)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().UserExists(ctx, uint(3)).Return(true, nil)
		mockRepo.EXPECT().ExistsByToken(ctx, gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, s *session.Session) error {
				assert.NotEmpty(t, s.Token)
				assert.True(t, s.StoredActive)
				s.ID = 5
				return nil
			})
		mockRepo.EXPECT().TouchLastAccess(ctx, uint(3), now).Return(nil)

		res, err := svc.Create(ctx, session.CreateSessionRequest{UserID: 3, Device: "laptop"})

		require.NoError(t, err)
		assert.Equal(t, now, res.StartedAt)
		assert.Equal(t, now.Add(8*time.Hour), res.ExpiresAt)
		assert.True(t, res.Active)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("expiry not after start", func(t *testing.T) {
		_, sqlMock, _, svc := setup(t)
		start := now
		expires := now

		_, err := svc.Create(ctx, session.CreateSessionRequest{UserID: 3, StartedAt: &start, ExpiresAt: &expires})

		assert.Contains(t, apperror.ToHTTP(err).Details, "fecha_expiracion")
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, false)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().UserExists(ctx, uint(9)).Return(false, nil)

		_, err := svc.Create(ctx, session.CreateSessionRequest{UserID: 9})

		assert.ErrorIs(t, err, sessionerrors.ErrUserMissing)
	})

	t.Run("token taken", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, false)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().UserExists(ctx, uint(3)).Return(true, nil)
		mockRepo.EXPECT().ExistsByToken(ctx, "tok-1").Return(true, nil)

		_, err := svc.Create(ctx, session.CreateSessionRequest{UserID: 3, Token: " tok-1 "})

		assert.ErrorIs(t, err, sessionerrors.ErrTokenTaken)
	})
}

func TestSessionService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("expired session reads inactive while stored flag stays", func(t *testing.T) {
		mockRepo, _, clk, svc := setup(t)
		stored := openSession()
		mockRepo.EXPECT().FindByID(ctx, uint(5)).Return(stored, nil).Times(2)

		res, err := svc.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.True(t, res.Active)
		assert.Equal(t, "lgomez", res.Username)

		clk.T = now.Add(2 * time.Hour)
		res, err = svc.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.False(t, res.Active)
		assert.True(t, stored.StoredActive)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo, _, _, svc := setup(t)
		mockRepo.EXPECT().FindByID(ctx, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, 5)

		assert.ErrorIs(t, err, sessionerrors.ErrSessionNotFound)
	})
}

func TestSessionService_End(t *testing.T) {
	ctx := context.Background()

	t.Run("closes an open session", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, true)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().FindByID(ctx, uint(5)).Return(openSession(), nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, s *session.Session) error {
				assert.False(t, s.StoredActive)
				return nil
			})

		res, err := svc.End(ctx, 5)

		require.NoError(t, err)
		assert.False(t, res.Active)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, false)

		closed := openSession()
		closed.StoredActive = false
		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().FindByID(ctx, uint(5)).Return(closed, nil)

		res, err := svc.End(ctx, 5)

		require.NoError(t, err)
		assert.False(t, res.Active)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestSessionService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("expiry before start rejected", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, false)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().FindByID(ctx, uint(5)).Return(openSession(), nil)

		expires := now.Add(-2 * time.Hour)
		_, err := svc.Update(ctx, 5, session.UpdateSessionRequest{ExpiresAt: &expires})

		assert.ErrorIs(t, err, sessionerrors.ErrExpiryBeforeStart)
	})

	t.Run("extends expiry", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, true)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().FindByID(ctx, uint(5)).Return(openSession(), nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		expires := now.Add(4 * time.Hour)
		location := "Bogotá"
		res, err := svc.Update(ctx, 5, session.UpdateSessionRequest{ExpiresAt: &expires, Location: &location})

		require.NoError(t, err)
		assert.Equal(t, expires, res.ExpiresAt)
		assert.Equal(t, "Bogotá", res.Location)
	})
}

func TestSessionService_GetAll(t *testing.T) {
	mockRepo, _, _, svc := setup(t)
	active := true
	filter := session.SessionFilter{Active: &active}
	mockRepo.EXPECT().FindAll(gomock.Any(), filter, now).Return([]session.Session{*openSession()}, nil)

	res, err := svc.GetAll(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.True(t, res[0].Active)
}

func TestSessionService_Delete(t *testing.T) {
	ctx := context.Background()
	mockRepo, sqlMock, _, svc := setup(t)
	testdb.ExpectTx(sqlMock, true)

	mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
	mockRepo.EXPECT().FindByID(ctx, uint(5)).Return(openSession(), nil)
	mockRepo.EXPECT().Delete(ctx, uint(5)).Return(relation.Report{Deleted: map[relation.Kind]int64{relation.KindSession: 1}}, nil)

	report, err := svc.Delete(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Root(relation.KindSession))
}
