package department

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	departmenterrors "go-workforce/internal/department/errors"
	"go-workforce/internal/relation"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/cachekey"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, filter DepartmentFilter) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id uint) (DepartmentResponse, error)
	Update(ctx context.Context, id uint, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id uint) (relation.Report, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		clock:  clk,
		logger: l,
	}
}

func validateName(name string, fields apperror.FieldErrors) {
	switch {
	case name == "":
		fields.Add("nombre", apperror.RequiredField("nombre"))
	case utf8.RuneCountInString(name) > 50:
		fields.Add("nombre", "Nombre must be at most 50 characters")
	}
}

func validateStatus(status string, fields apperror.FieldErrors) {
	if !ValidStatus(status) {
		fields.Add("estado", "Estado must be one of: activo, inactivo")
	}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	name := strings.TrimSpace(req.Name)
	status := req.Status
	if status == "" {
		status = StatusActive
	}
	log.Debug("create department requested", zap.String("nombre", name))

	fields := apperror.FieldErrors{}
	validateName(name, fields)
	validateStatus(status, fields)
	if err := fields.Err(); err != nil {
		return DepartmentResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("create department begin tx failed", zap.Error(tx.Error))
		return DepartmentResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	taken, err := qtx.ExistsByName(ctx, name, 0)
	if err != nil {
		log.Error("create department name check failed", zap.Error(err))
		return DepartmentResponse{}, apperror.Internal(err)
	}
	if taken {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNameTaken
	}

	dept := &Department{
		Name:        name,
		Description: req.Description,
		Status:      status,
		CreatedAt:   s.clock.Now(),
	}
	if err := qtx.Create(ctx, dept); err != nil {
		log.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, apperror.Internal(err)
	}

	s.invalidateCache(ctx)
	log.Info("create department success", zap.Uint("id_departamento", dept.ID))

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, filter DepartmentFilter) ([]DepartmentResponse, error) {
	if filter.Status != nil && !ValidStatus(*filter.Status) {
		return nil, apperror.InvalidRequest("estado must be one of: activo, inactivo")
	}
	if !filter.IsZero() {
		depts, err := s.repo.FindAll(ctx, filter)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return mapToListResponse(depts), nil
	}

	cacheKey := cachekey.DepartmentsAll()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		// shared by every waiting caller, so one cancellation must not fail the rest
		ctx := context.WithoutCancel(ctx)
		depts, err := s.repo.FindAll(ctx, filter)
		if err != nil {
			return nil, apperror.Internal(err)
		}

		resp := mapToListResponse(depts)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, cachekey.TTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update department requested", zap.Uint("id_departamento", id))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("update department begin tx failed", zap.Error(tx.Error))
		return DepartmentResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	fields := apperror.FieldErrors{}
	if req.Name != nil {
		dept.Name = strings.TrimSpace(*req.Name)
		validateName(dept.Name, fields)
	}
	if req.Description != nil {
		dept.Description = *req.Description
	}
	if req.Status != nil {
		dept.Status = *req.Status
		validateStatus(dept.Status, fields)
	}
	if err := fields.Err(); err != nil {
		return DepartmentResponse{}, err
	}

	if req.Name != nil {
		taken, err := qtx.ExistsByName(ctx, dept.Name, dept.ID)
		if err != nil {
			log.Error("update department name check failed", zap.Error(err))
			return DepartmentResponse{}, apperror.Internal(err)
		}
		if taken {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNameTaken
		}
	}

	if err := qtx.Update(ctx, dept); err != nil {
		log.Error("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, apperror.Internal(err)
	}

	s.invalidateCache(ctx, cachekey.RolesByDepartment(id))
	log.Info("update department success", zap.Uint("id_departamento", id))

	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id uint) (relation.Report, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("delete department requested", zap.Uint("id_departamento", id))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("delete department begin tx failed", zap.Error(tx.Error))
		return relation.Report{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return relation.Report{}, mapRepositoryError(err)
	}

	report, err := qtx.Delete(ctx, id)
	if err != nil {
		log.Error("delete department cascade failed", zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("delete department commit failed", zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	s.invalidateCache(ctx, cachekey.RolesByDepartment(id))
	log.Info("delete department success",
		zap.Uint("id_departamento", id),
		zap.Any("deleted", report.Deleted),
	)

	return report, nil
}

func (s *service) invalidateCache(ctx context.Context, extra ...string) {
	if s.rdb == nil {
		return
	}
	keys := append([]string{cachekey.DepartmentsAll()}, extra...)
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache",
			zap.Error(err),
			zap.Strings("keys", keys),
		)
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		Description: dept.Description,
		Status:      dept.Status,
		CreatedAt:   dept.CreatedAt,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
