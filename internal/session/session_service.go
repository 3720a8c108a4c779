package session

import (
	"context"
	"strings"
	"time"

	"go-workforce/internal/relation"
	sessionerrors "go-workforce/internal/session/errors"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultTTL = 8 * time.Hour

//go:generate mockgen -source=session_service.go -destination=mock/session_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSessionRequest) (SessionResponse, error)
	GetAll(ctx context.Context, filter SessionFilter) ([]SessionResponse, error)
	GetByID(ctx context.Context, id uint) (SessionResponse, error)
	Update(ctx context.Context, id uint, req UpdateSessionRequest) (SessionResponse, error)
	End(ctx context.Context, id uint) (SessionResponse, error)
	Delete(ctx context.Context, id uint) (relation.Report, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	clock  clock.Clock
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, clk clock.Clock, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("session.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &service{
		db:     db,
		repo:   repo,
		clock:  clk,
		ttl:    ttl,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateSessionRequest) (SessionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	now := s.clock.Now()
	started := now
	if req.StartedAt != nil {
		started = req.StartedAt.UTC()
	}
	expires := started.Add(s.ttl)
	if req.ExpiresAt != nil {
		expires = req.ExpiresAt.UTC()
	}
	token := strings.TrimSpace(req.Token)
	if token == "" {
		token = uuid.NewString()
	}

	fields := apperror.FieldErrors{}
	if req.UserID == 0 {
		fields.Add("id_usuario", apperror.RequiredField("id_usuario"))
	}
	if !expires.After(started) {
		fields.Add("fecha_expiracion", "Fecha Expiracion must be after Fecha Inicio")
	}
	if err := fields.Err(); err != nil {
		return SessionResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return SessionResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.UserExists(ctx, req.UserID)
	if err != nil {
		return SessionResponse{}, apperror.Internal(err)
	}
	if !exists {
		return SessionResponse{}, sessionerrors.ErrUserMissing
	}
	taken, err := qtx.ExistsByToken(ctx, token)
	if err != nil {
		return SessionResponse{}, apperror.Internal(err)
	}
	if taken {
		return SessionResponse{}, sessionerrors.ErrTokenTaken
	}

	sess := &Session{
		UserID:       req.UserID,
		Token:        token,
		IPAddress:    req.IPAddress,
		UserAgent:    req.UserAgent,
		StartedAt:    started,
		ExpiresAt:    expires,
		StoredActive: true,
		Location:     req.Location,
		Device:       req.Device,
	}
	if err := qtx.Create(ctx, sess); err != nil {
		log.Error("failed to create session", zap.Error(err))
		return SessionResponse{}, mapRepositoryError(err)
	}
	if err := qtx.TouchLastAccess(ctx, sess.UserID, started); err != nil {
		log.Error("failed to stamp ultimo_acceso", zap.Error(err))
		return SessionResponse{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		return SessionResponse{}, apperror.Internal(err)
	}

	log.Info("session opened",
		zap.Uint("id_sesion", sess.ID),
		zap.Uint("id_usuario", sess.UserID),
		zap.Time("fecha_expiracion", sess.ExpiresAt),
	)
	return mapToResponse(*sess, now), nil
}

func (s *service) GetAll(ctx context.Context, filter SessionFilter) ([]SessionResponse, error) {
	now := s.clock.Now()
	sessions, err := s.repo.FindAll(ctx, filter, now)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to list sessions", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	resp := make([]SessionResponse, len(sessions))
	for i, sess := range sessions {
		resp[i] = mapToResponse(sess, now)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (SessionResponse, error) {
	sess, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SessionResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*sess, s.clock.Now()), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateSessionRequest) (SessionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return SessionResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindByID(ctx, id)
	if err != nil {
		return SessionResponse{}, mapRepositoryError(err)
	}

	if req.ExpiresAt != nil {
		expires := req.ExpiresAt.UTC()
		if !expires.After(sess.StartedAt) {
			return SessionResponse{}, sessionerrors.ErrExpiryBeforeStart
		}
		sess.ExpiresAt = expires
	}
	if req.IPAddress != nil {
		sess.IPAddress = *req.IPAddress
	}
	if req.UserAgent != nil {
		sess.UserAgent = *req.UserAgent
	}
	if req.Location != nil {
		sess.Location = *req.Location
	}
	if req.Device != nil {
		sess.Device = *req.Device
	}

	if err := qtx.Update(ctx, sess); err != nil {
		log.Error("failed to update session", zap.Uint("id_sesion", id), zap.Error(err))
		return SessionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return SessionResponse{}, apperror.Internal(err)
	}

	return mapToResponse(*sess, s.clock.Now()), nil
}

// End is idempotent: closing a closed session succeeds without writing.
func (s *service) End(ctx context.Context, id uint) (SessionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return SessionResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sess, err := qtx.FindByID(ctx, id)
	if err != nil {
		return SessionResponse{}, mapRepositoryError(err)
	}

	if !sess.End() {
		log.Debug("session already closed", zap.Uint("id_sesion", id))
		return mapToResponse(*sess, s.clock.Now()), nil
	}

	if err := qtx.Update(ctx, sess); err != nil {
		log.Error("failed to close session", zap.Uint("id_sesion", id), zap.Error(err))
		return SessionResponse{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		return SessionResponse{}, apperror.Internal(err)
	}

	log.Info("session closed", zap.Uint("id_sesion", id))
	return mapToResponse(*sess, s.clock.Now()), nil
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
		contextutil.GetLogger(ctx, s.logger).Error("failed to delete session", zap.Uint("id_sesion", id), zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		return relation.Report{}, apperror.Internal(err)
	}
	return report, nil
}

func mapToResponse(s Session, now time.Time) SessionResponse {
	resp := SessionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Token:     s.Token,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		StartedAt: s.StartedAt,
		ExpiresAt: s.ExpiresAt,
		Active:    s.EffectiveActive(now),
		Location:  s.Location,
		Device:    s.Device,
	}
	if s.User != nil {
		resp.Username = s.User.Username
	}
	return resp
}
