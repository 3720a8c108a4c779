package stats

import (
	"context"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=stats_service.go -destination=mock/stats_service_mock.go -package=mock
type Service interface {
	General(ctx context.Context) (GeneralStats, error)
	ByDepartment(ctx context.Context) ([]DepartmentStats, error)
}

// service never caches: concurrent identical requests share one query,
// later requests always see the latest committed rows.
type service struct {
	repo   Repository
	sf     *singleflight.Group
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		repo:   repo,
		sf:     &singleflight.Group{},
		clock:  clk,
		logger: l,
	}
}

func (s *service) General(ctx context.Context) (GeneralStats, error) {
	v, err, shared := s.do(ctx, "general", func(ctx context.Context) (any, error) {
		return s.repo.General(ctx, s.clock.Now())
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("general stats query failed", zap.Error(err))
		return GeneralStats{}, apperror.Internal(err)
	}
	contextutil.GetLogger(ctx, s.logger).Debug("general stats computed", zap.Bool("shared", shared))
	return v.(GeneralStats), nil
}

func (s *service) ByDepartment(ctx context.Context) ([]DepartmentStats, error) {
	v, err, _ := s.do(ctx, "departamentos", func(ctx context.Context) (any, error) {
		rows, err := s.repo.ByDepartment(ctx)
		if rows == nil {
			rows = []DepartmentStats{}
		}
		return rows, err
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("department stats query failed", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return v.([]DepartmentStats), nil
}

// do runs fn once per key for all concurrent callers. The query itself is
// detached from the first caller's cancellation; each caller stops waiting
// when its own ctx ends.
func (s *service) do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error, bool) {
	shared := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(key, func() (any, error) {
		return fn(shared)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err(), false
	case res := <-ch:
		return res.Val, res.Err, res.Shared
	}
}
