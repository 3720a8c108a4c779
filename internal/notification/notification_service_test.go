package notification_test

import (
	"context"
	"testing"
	"time"

	"go-workforce/internal/notification"
	notificationerrors "go-workforce/internal/notification/errors"
	mock_notification "go-workforce/internal/notification/mock"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 6, 10, 14, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*mock_notification.MockRepository, sqlmock.Sqlmock, *clock.Fixed, notification.Service) {
	ctrl := gomock.NewController(t)
	db, sqlMock := testdb.NewMock(t)
	mockRepo := mock_notification.NewMockRepository(ctrl)
	clk := &clock.Fixed{T: now}
	return mockRepo, sqlMock, clk, notification.NewService(db, mockRepo, clk)
}

func unread() *notification.Notification {
	return &notification.Notification{
		ID:        8,
		UserID:    3,
		User:      &notification.NotificationUser{ID: 3, Username: "lgomez"},
		Title:     "Nuevo turno",
		Message:   "Tiene un turno asignado",
		Type:      notification.TypeInfo,
		Category:  notification.CategoryWork,
		CreatedAt: now.Add(-time.Hour),
	}
}

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults tipo and categoria and starts unread", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, true)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().UserExists(ctx, uint(3)).Return(true, nil)
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, n *notification.Notification) error {
				n.ID = 8
				return nil
			})

		res, err := svc.Create(ctx, notification.CreateNotificationRequest{UserID: 3, Title: " Hola ", Message: "Bienvenida"})

		require.NoError(t, err)
		assert.Equal(t, "Hola", res.Title)
		assert.Equal(t, "info", res.Type)
		assert.Equal(t, "sistema", res.Category)
		assert.False(t, res.Read)
		assert.Nil(t, res.ReadAt)
		assert.Equal(t, now, res.CreatedAt)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("validation", func(t *testing.T) {
		_, _, _, svc := setup(t)
		past := now.Add(-time.Minute)

		_, err := svc.Create(ctx, notification.CreateNotificationRequest{
			UserID:    3,
			Type:      "urgente",
			Category:  "otros",
			ExpiresAt: &past,
		})

		details := apperror.ToHTTP(err).Details
		for _, field := range []string{"titulo", "mensaje", "tipo", "categoria", "fecha_expiracion"} {
			assert.Contains(t, details, field)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, false)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().UserExists(ctx, uint(3)).Return(false, nil)

		_, err := svc.Create(ctx, notification.CreateNotificationRequest{UserID: 3, Title: "x", Message: "y"})

		assert.ErrorIs(t, err, notificationerrors.ErrUserMissing)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("first call stamps fecha_lectura", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, true)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().FindByID(ctx, uint(8)).Return(unread(), nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		res, err := svc.MarkRead(ctx, 8)

		require.NoError(t, err)
		assert.True(t, res.Read)
		require.NotNil(t, res.ReadAt)
		assert.Equal(t, now, *res.ReadAt)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("second call keeps the first read time", func(t *testing.T) {
		mockRepo, sqlMock, clk, svc := setup(t)
		testdb.ExpectTx(sqlMock, false)

		read := unread()
		read.MarkRead(now)
		clk.T = now.Add(time.Hour)
		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().FindByID(ctx, uint(8)).Return(read, nil)

		res, err := svc.MarkRead(ctx, 8)

		require.NoError(t, err)
		assert.Equal(t, now, *res.ReadAt)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, true)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().UserExists(ctx, uint(3)).Return(true, nil)
		mockRepo.EXPECT().MarkAllRead(ctx, uint(3), now).Return(int64(4), nil)

		res, err := svc.MarkAllRead(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(4), res.Updated)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		mockRepo, sqlMock, _, svc := setup(t)
		testdb.ExpectTx(sqlMock, false)

		mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
		mockRepo.EXPECT().UserExists(ctx, uint(3)).Return(false, nil)

		_, err := svc.MarkAllRead(ctx, 3)

		assert.Equal(t, 404, apperror.ToHTTP(err).Status)
	})
}

func TestNotificationService_Update(t *testing.T) {
	ctx := context.Background()
	mockRepo, sqlMock, _, svc := setup(t)
	testdb.ExpectTx(sqlMock, true)

	read := unread()
	read.MarkRead(now.Add(-time.Minute))
	mockRepo.EXPECT().WithTx(gomock.Any()).Return(mockRepo)
	mockRepo.EXPECT().FindByID(ctx, uint(8)).Return(read, nil)
	mockRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	unset := false
	res, err := svc.Update(ctx, 8, notification.UpdateNotificationRequest{Read: &unset})

	require.NoError(t, err)
	assert.False(t, res.Read)
	assert.Nil(t, res.ReadAt)
}

func TestNotificationService_GetByUser(t *testing.T) {
	mockRepo, _, clk, svc := setup(t)
	expires := now.Add(time.Hour)
	n := unread()
	n.ExpiresAt = &expires
	leida := false
	userID := uint(3)
	mockRepo.EXPECT().
		FindAll(gomock.Any(), notification.NotificationFilter{UserID: &userID, Read: &leida}).
		Return([]notification.Notification{*n}, nil).
		Times(2)

	res, err := svc.GetByUser(context.Background(), 3, &leida)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.False(t, res[0].Expired)
	assert.Equal(t, "lgomez", res[0].Username)

	clk.T = expires
	res, err = svc.GetByUser(context.Background(), 3, &leida)
	require.NoError(t, err)
	assert.True(t, res[0].Expired, "expired notifications stay listed")
}

func TestNotificationService_GetAll_BadCategory(t *testing.T) {
	_, _, _, svc := setup(t)
	category := "otros"

	_, err := svc.GetAll(context.Background(), notification.NotificationFilter{Category: &category})

	assert.Equal(t, 400, apperror.ToHTTP(err).Status)
}
