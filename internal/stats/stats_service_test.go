package stats_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/stats"
	mock_stats "go-workforce/internal/stats/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStatsService_General(t *testing.T) {
	ctx := context.Background()
	clk := &clock.Fixed{T: time.Date(2026, 7, 3, 9, 0, 0, 0, time.UTC)}

	t.Run("passes the clock to the query and never caches", func(t *testing.T) {
		repo := mock_stats.NewMockRepository(gomock.NewController(t))
		svc := stats.NewService(repo, clk)

		first := stats.GeneralStats{TotalEmployees: 4, ActiveEmployees: 2}
		second := stats.GeneralStats{TotalEmployees: 5, ActiveEmployees: 3}
		gomock.InOrder(
			repo.EXPECT().General(gomock.Any(), clk.T).Return(first, nil),
			repo.EXPECT().General(gomock.Any(), clk.T).Return(second, nil),
		)

		got, err := svc.General(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, got)

		got, err = svc.General(ctx)
		require.NoError(t, err)
		assert.Equal(t, second, got)
	})

	t.Run("query failure is internal", func(t *testing.T) {
		repo := mock_stats.NewMockRepository(gomock.NewController(t))
		svc := stats.NewService(repo, clk)
		repo.EXPECT().General(gomock.Any(), gomock.Any()).Return(stats.GeneralStats{}, errors.New("db down"))

		_, err := svc.General(ctx)

		assert.Equal(t, http.StatusInternalServerError, apperror.ToHTTP(err).Status)
	})
}

func TestStatsService_General_CancelledCallerDoesNotFailOthers(t *testing.T) {
	clk := &clock.Fixed{T: time.Date(2026, 7, 3, 9, 0, 0, 0, time.UTC)}
	repo := mock_stats.NewMockRepository(gomock.NewController(t))
	svc := stats.NewService(repo, clk)

	want := stats.GeneralStats{TotalEmployees: 4, ActiveEmployees: 2}
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	repo.EXPECT().
		General(gomock.Any(), clk.T).
		DoAndReturn(func(qctx context.Context, _ time.Time) (stats.GeneralStats, error) {
			once.Do(func() { close(started) })
			<-release
			assert.NoError(t, qctx.Err())
			return want, nil
		}).
		MinTimes(1)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.General(firstCtx)
		firstErr <- err
	}()
	<-started

	type result struct {
		stats stats.GeneralStats
		err   error
	}
	second := make(chan result, 1)
	go func() {
		got, err := svc.General(context.Background())
		second <- result{got, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	require.Error(t, <-firstErr)

	close(release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, want, res.stats)
}

func TestStatsService_ByDepartment(t *testing.T) {
	ctx := context.Background()

	t.Run("no departments is an empty list", func(t *testing.T) {
		repo := mock_stats.NewMockRepository(gomock.NewController(t))
		svc := stats.NewService(repo, nil)
		repo.EXPECT().ByDepartment(gomock.Any()).Return(nil, nil)

		got, err := svc.ByDepartment(ctx)

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("rows pass through", func(t *testing.T) {
		repo := mock_stats.NewMockRepository(gomock.NewController(t))
		svc := stats.NewService(repo, nil)
		rows := []stats.DepartmentStats{{DepartmentID: 1, Name: "IT", Total: 4, Active: 2, Inactive: 1, Suspended: 1}}
		repo.EXPECT().ByDepartment(gomock.Any()).Return(rows, nil)

		got, err := svc.ByDepartment(ctx)

		require.NoError(t, err)
		assert.Equal(t, rows, got)
	})

	t.Run("query failure is internal", func(t *testing.T) {
		repo := mock_stats.NewMockRepository(gomock.NewController(t))
		svc := stats.NewService(repo, nil)
		repo.EXPECT().ByDepartment(gomock.Any()).Return(nil, errors.New("db down"))

		_, err := svc.ByDepartment(ctx)

		assert.Equal(t, http.StatusInternalServerError, apperror.ToHTTP(err).Status)
	})
}
