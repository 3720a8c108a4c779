package systemlog

import (
	"context"
	"errors"
	"strings"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"
	systemlogerrors "go-workforce/internal/systemlog/errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=systemlog_service.go -destination=mock/systemlog_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLogRequest) (LogResponse, error)
	GetAll(ctx context.Context, filter LogFilter) ([]LogResponse, error)
	GetByID(ctx context.Context, id uint) (LogResponse, error)
}

type service struct {
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("systemlog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("systemlog.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{repo: repo, clock: clk, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLogRequest) (LogResponse, error) {
	level := strings.ToUpper(strings.TrimSpace(req.Level))

	fields := apperror.FieldErrors{}
	if !ValidLevel(level) {
		fields.Add("nivel", "Nivel must be one of: DEBUG, INFO, WARNING, ERROR, CRITICAL")
	}
	if strings.TrimSpace(req.Message) == "" {
		fields.Add("mensaje", apperror.RequiredField("mensaje"))
	}
	if err := fields.Err(); err != nil {
		return LogResponse{}, err
	}

	if req.UserID != nil {
		exists, err := s.repo.UserExists(ctx, *req.UserID)
		if err != nil {
			return LogResponse{}, apperror.Internal(err)
		}
		if !exists {
			return LogResponse{}, systemlogerrors.ErrUserMissing
		}
	}

	logCtx := datatypes.JSONMap(req.Context)
	if logCtx == nil {
		logCtx = datatypes.JSONMap{}
	}
	e := &Entry{
		Level:     level,
		Message:   req.Message,
		Module:    req.Module,
		UserID:    req.UserID,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		Context:   logCtx,
		LoggedAt:  s.clock.Now(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to write system log", zap.Error(err))
		return LogResponse{}, apperror.Internal(err)
	}

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, filter LogFilter) ([]LogResponse, error) {
	if filter.Level != nil {
		level := strings.ToUpper(*filter.Level)
		if !ValidLevel(level) {
			return nil, apperror.InvalidRequest("nivel must be one of: DEBUG, INFO, WARNING, ERROR, CRITICAL")
		}
		filter.Level = &level
	}

	entries, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to list system logs", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	resp := make([]LogResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (LogResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LogResponse{}, systemlogerrors.ErrLogNotFound
	}
	if err != nil {
		return LogResponse{}, apperror.Internal(err)
	}
	return mapToResponse(*e), nil
}

func mapToResponse(e Entry) LogResponse {
	logCtx := map[string]any(e.Context)
	if logCtx == nil {
		logCtx = map[string]any{}
	}
	resp := LogResponse{
		ID:        e.ID,
		Level:     e.Level,
		Message:   e.Message,
		Module:    e.Module,
		UserID:    e.UserID,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		Context:   logCtx,
		LoggedAt:  e.LoggedAt,
	}
	if e.User != nil {
		resp.Username = e.User.Username
	}
	return resp
}
