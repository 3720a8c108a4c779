package activity

import (
	"context"
	"errors"
	"strings"

	activityerrors "go-workforce/internal/activity/errors"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=activity_service.go -destination=mock/activity_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateActivityRequest) (ActivityResponse, error)
	GetAll(ctx context.Context, filter ActivityFilter) ([]ActivityResponse, error)
	GetByID(ctx context.Context, id uint) (ActivityResponse, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

// NewService needs no transaction handle: a single insert is the only
// write.
func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("activity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{repo: repo, clock: clk, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateActivityRequest) (ActivityResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	action := strings.TrimSpace(req.Action)
	fields := apperror.FieldErrors{}
	if req.UserID == 0 {
		fields.Add("id_usuario", apperror.RequiredField("id_usuario"))
	}
	if action == "" {
		fields.Add("accion", apperror.RequiredField("accion"))
	}
	if err := fields.Err(); err != nil {
		return ActivityResponse{}, err
	}

	exists, err := s.repo.UserExists(ctx, req.UserID)
	if err != nil {
		return ActivityResponse{}, apperror.Internal(err)
	}
	if !exists {
		return ActivityResponse{}, activityerrors.ErrUserMissing
	}

	extra := datatypes.JSONMap(req.Extra)
	if extra == nil {
		extra = datatypes.JSONMap{}
	}
	a := &Activity{
		UserID:      req.UserID,
		Action:      action,
		Description: req.Description,
		Module:      req.Module,
		IPAddress:   req.IPAddress,
		Extra:       extra,
		OccurredAt:  s.clock.Now(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ActivityResponse{}, activityerrors.ErrUserMissing
		}
		log.Error("failed to record activity", zap.Error(err))
		return ActivityResponse{}, apperror.Internal(err)
	}

	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context, filter ActivityFilter) ([]ActivityResponse, error) {
	activities, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to list activities", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	resp := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (ActivityResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ActivityResponse{}, activityerrors.ErrActivityNotFound
	}
	if err != nil {
		return ActivityResponse{}, apperror.Internal(err)
	}
	return mapToResponse(*a), nil
}

func mapToResponse(a Activity) ActivityResponse {
	extra := map[string]any(a.Extra)
	if extra == nil {
		extra = map[string]any{}
	}
	resp := ActivityResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Action:      a.Action,
		Description: a.Description,
		Module:      a.Module,
		IPAddress:   a.IPAddress,
		Extra:       extra,
		OccurredAt:  a.OccurredAt,
	}
	if a.User != nil {
		resp.Username = a.User.Username
	}
	return resp
}
