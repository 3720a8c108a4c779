package notification

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	notificationerrors "go-workforce/internal/notification/errors"
	"go-workforce/internal/relation"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error)
	GetAll(ctx context.Context, filter NotificationFilter) ([]NotificationResponse, error)
	GetByID(ctx context.Context, id uint) (NotificationResponse, error)
	GetByUser(ctx context.Context, userID uint, read *bool) ([]NotificationResponse, error)
	Update(ctx context.Context, id uint, req UpdateNotificationRequest) (NotificationResponse, error)
	MarkRead(ctx context.Context, id uint) (NotificationResponse, error)
	MarkAllRead(ctx context.Context, userID uint) (MarkAllReadResponse, error)
	Delete(ctx context.Context, id uint) (relation.Report, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:     db,
		repo:   repo,
		clock:  clk,
		logger: l,
	}
}

func validateNotification(n *Notification, fields apperror.FieldErrors) {
	switch {
	case strings.TrimSpace(n.Title) == "":
		fields.Add("titulo", apperror.RequiredField("titulo"))
	case utf8.RuneCountInString(n.Title) > 200:
		fields.Add("titulo", "Titulo must be at most 200 characters")
	}
	if strings.TrimSpace(n.Message) == "" {
		fields.Add("mensaje", apperror.RequiredField("mensaje"))
	}
	if !ValidType(n.Type) {
		fields.Add("tipo", "Tipo must be one of: info, warning, error, success")
	}
	if !ValidCategory(n.Category) {
		fields.Add("categoria", "Categoria must be one of: sistema, seguridad, trabajo, personal")
	}
	if n.ActionURL != nil && utf8.RuneCountInString(*n.ActionURL) > 255 {
		fields.Add("url_accion", "Url Accion must be at most 255 characters")
	}
	if n.ExpiresAt != nil && !n.ExpiresAt.After(n.CreatedAt) {
		fields.Add("fecha_expiracion", "Fecha Expiracion must be after Fecha Creacion")
	}
}

func (s *service) Create(ctx context.Context, req CreateNotificationRequest) (NotificationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	n := &Notification{
		UserID:    req.UserID,
		Title:     strings.TrimSpace(req.Title),
		Message:   req.Message,
		Type:      req.Type,
		Category:  req.Category,
		ActionURL: req.ActionURL,
		CreatedAt: s.clock.Now(),
		ExpiresAt: utcPtr(req.ExpiresAt),
	}
	if n.Type == "" {
		n.Type = TypeInfo
	}
	if n.Category == "" {
		n.Category = CategorySystem
	}

	fields := apperror.FieldErrors{}
	if n.UserID == 0 {
		fields.Add("id_usuario", apperror.RequiredField("id_usuario"))
	}
	validateNotification(n, fields)
	if err := fields.Err(); err != nil {
		return NotificationResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return NotificationResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.UserExists(ctx, n.UserID)
	if err != nil {
		return NotificationResponse{}, apperror.Internal(err)
	}
	if !exists {
		return NotificationResponse{}, notificationerrors.ErrUserMissing
	}

	if err := qtx.Create(ctx, n); err != nil {
		log.Error("failed to create notification", zap.Error(err))
		return NotificationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return NotificationResponse{}, apperror.Internal(err)
	}

	log.Info("notification created",
		zap.Uint("id_notificacion", n.ID),
		zap.Uint("id_usuario", n.UserID),
		zap.String("categoria", n.Category),
	)
	return mapToResponse(*n, s.clock.Now()), nil
}

func (s *service) GetAll(ctx context.Context, filter NotificationFilter) ([]NotificationResponse, error) {
	if filter.Category != nil && !ValidCategory(*filter.Category) {
		return nil, apperror.InvalidRequest("categoria must be one of: sistema, seguridad, trabajo, personal")
	}
	if filter.Type != nil && !ValidType(*filter.Type) {
		return nil, apperror.InvalidRequest("tipo must be one of: info, warning, error, success")
	}

	notifications, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to list notifications", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	now := s.clock.Now()
	resp := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		resp[i] = mapToResponse(n, now)
	}
	return resp, nil
}

func (s *service) GetByUser(ctx context.Context, userID uint, read *bool) ([]NotificationResponse, error) {
	return s.GetAll(ctx, NotificationFilter{UserID: &userID, Read: read})
}

func (s *service) GetByID(ctx context.Context, id uint) (NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return NotificationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*n, s.clock.Now()), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateNotificationRequest) (NotificationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return NotificationResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	n, err := qtx.FindByID(ctx, id)
	if err != nil {
		return NotificationResponse{}, mapRepositoryError(err)
	}

	if req.Title != nil {
		n.Title = strings.TrimSpace(*req.Title)
	}
	if req.Message != nil {
		n.Message = *req.Message
	}
	if req.Type != nil {
		n.Type = *req.Type
	}
	if req.Category != nil {
		n.Category = *req.Category
	}
	if req.ActionURL != nil {
		n.ActionURL = req.ActionURL
	}
	if req.ExpiresAt != nil {
		n.ExpiresAt = utcPtr(req.ExpiresAt)
	}
	if req.Read != nil {
		if *req.Read {
			n.MarkRead(s.clock.Now())
		} else {
			n.MarkUnread()
		}
	}

	fields := apperror.FieldErrors{}
	validateNotification(n, fields)
	if err := fields.Err(); err != nil {
		return NotificationResponse{}, err
	}

	if err := qtx.Update(ctx, n); err != nil {
		log.Error("failed to update notification", zap.Uint("id_notificacion", id), zap.Error(err))
		return NotificationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return NotificationResponse{}, apperror.Internal(err)
	}

	return mapToResponse(*n, s.clock.Now()), nil
}

// MarkRead is idempotent: a second call succeeds and keeps the first
// fecha_lectura.
func (s *service) MarkRead(ctx context.Context, id uint) (NotificationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return NotificationResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	n, err := qtx.FindByID(ctx, id)
	if err != nil {
		return NotificationResponse{}, mapRepositoryError(err)
	}

	now := s.clock.Now()
	if !n.MarkRead(now) {
		return mapToResponse(*n, now), nil
	}

	if err := qtx.Update(ctx, n); err != nil {
		log.Error("failed to mark notification read", zap.Uint("id_notificacion", id), zap.Error(err))
		return NotificationResponse{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		return NotificationResponse{}, apperror.Internal(err)
	}

	return mapToResponse(*n, now), nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uint) (MarkAllReadResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return MarkAllReadResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.UserExists(ctx, userID)
	if err != nil {
		return MarkAllReadResponse{}, apperror.Internal(err)
	}
	if !exists {
		return MarkAllReadResponse{}, notificationerrors.ErrUserNotFound
	}

	updated, err := qtx.MarkAllRead(ctx, userID, s.clock.Now())
	if err != nil {
		log.Error("failed to mark notifications read", zap.Uint("id_usuario", userID), zap.Error(err))
		return MarkAllReadResponse{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		return MarkAllReadResponse{}, apperror.Internal(err)
	}

	log.Info("notifications marked read", zap.Uint("id_usuario", userID), zap.Int64("count", updated))
	return MarkAllReadResponse{UserID: userID, Updated: updated}, nil
}

func (s *service) Delete(ctx context.Context, id uint) (relation.Report, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return relation.Report{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return relation.Report{}, mapRepositoryError(err)
	}

	report, err := qtx.Delete(ctx, id)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to delete notification", zap.Uint("id_notificacion", id), zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		return relation.Report{}, apperror.Internal(err)
	}
	return report, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func mapToResponse(n Notification, now time.Time) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Category:  n.Category,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		ActionURL: n.ActionURL,
		CreatedAt: n.CreatedAt,
		ExpiresAt: n.ExpiresAt,
		Expired:   n.Expired(now),
	}
	if n.User != nil {
		resp.Username = n.User.Username
	}
	return resp
}
