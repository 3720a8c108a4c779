package role

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"go-workforce/internal/relation"
	roleerrors "go-workforce/internal/role/errors"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/cachekey"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=role_service.go -destination=mock/role_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	GetAll(ctx context.Context, filter RoleFilter) ([]RoleResponse, error)
	GetByID(ctx context.Context, id uint) (RoleResponse, error)
	GetActiveByDepartment(ctx context.Context, departmentID uint) ([]RoleResponse, error)
	Update(ctx context.Context, id uint, req UpdateRoleRequest) (RoleResponse, error)
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
	l := zap.L().Named("role.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.service")
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

func validateRole(r *Role, fields apperror.FieldErrors) {
	switch {
	case r.Name == "":
		fields.Add("nombre", apperror.RequiredField("nombre"))
	case utf8.RuneCountInString(r.Name) > 100:
		fields.Add("nombre", "Nombre must be at most 100 characters")
	}
	if r.DepartmentID == 0 {
		fields.Add("id_departamento", apperror.RequiredField("id_departamento"))
	}
	if !ValidAccessLevel(r.AccessLevel) {
		fields.Add("nivel_acceso", "Nivel Acceso must be one of: basico, intermedio, avanzado, admin")
	}
	if !ValidStatus(r.Status) {
		fields.Add("estado", "Estado must be one of: activo, inactivo")
	}
}

func (s *service) Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create role requested",
		zap.String("nombre", req.Name),
		zap.Uint("id_departamento", req.DepartmentID),
	)

	role := &Role{
		Name:         strings.TrimSpace(req.Name),
		DepartmentID: req.DepartmentID,
		Description:  req.Description,
		AccessLevel:  req.AccessLevel,
		Status:       req.Status,
		Permissions:  datatypes.NewJSONType(PermissionSet(req.Permissions)),
		CreatedAt:    s.clock.Now(),
	}
	if role.AccessLevel == "" {
		role.AccessLevel = AccessBasic
	}
	if role.Status == "" {
		role.Status = StatusActive
	}
	if req.Permissions == nil {
		role.Permissions = datatypes.NewJSONType(PermissionSet{})
	}

	fields := apperror.FieldErrors{}
	validateRole(role, fields)
	if err := fields.Err(); err != nil {
		return RoleResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("create role begin tx failed", zap.Error(tx.Error))
		return RoleResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.checkReferences(ctx, qtx, role, 0); err != nil {
		return RoleResponse{}, err
	}

	if err := qtx.Create(ctx, role); err != nil {
		log.Error("create role persist failed", zap.Error(err))
		return RoleResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("create role commit failed", zap.Error(err))
		return RoleResponse{}, apperror.Internal(err)
	}

	s.invalidateCache(ctx, role.DepartmentID)
	log.Info("create role success", zap.Uint("id_rol", role.ID))

	return mapToResponse(*role), nil
}

// checkReferences verifies the department exists and the name is free in it.
func (s *service) checkReferences(ctx context.Context, qtx Repository, role *Role, excludeID uint) error {
	exists, err := qtx.DepartmentExists(ctx, role.DepartmentID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !exists {
		return roleerrors.ErrDepartmentMissing
	}

	taken, err := qtx.ExistsByName(ctx, role.DepartmentID, role.Name, excludeID)
	if err != nil {
		return apperror.Internal(err)
	}
	if taken {
		return roleerrors.ErrRoleNameTaken
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, filter RoleFilter) ([]RoleResponse, error) {
	if filter.Status != nil && !ValidStatus(*filter.Status) {
		return nil, apperror.InvalidRequest("estado must be one of: activo, inactivo")
	}
	if filter.AccessLevel != nil && !ValidAccessLevel(*filter.AccessLevel) {
		return nil, apperror.InvalidRequest("nivel_acceso must be one of: basico, intermedio, avanzado, admin")
	}

	roles, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all roles failed", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return mapToListResponse(roles), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (RoleResponse, error) {
	role, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return RoleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*role), nil
}

// GetActiveByDepartment lists the active roles of one department. Results
// are cached per department until a role or the department changes.
func (s *service) GetActiveByDepartment(ctx context.Context, departmentID uint) ([]RoleResponse, error) {
	cacheKey := cachekey.RolesByDepartment(departmentID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []RoleResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		ctx := context.WithoutCancel(ctx)
		roles, err := s.repo.FindActiveByDepartment(ctx, departmentID)
		if err != nil {
			return nil, apperror.Internal(err)
		}

		resp := mapToListResponse(roles)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, cachekey.TTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get roles by department failed",
			zap.Uint("id_departamento", departmentID),
			zap.Error(err),
		)
		return nil, err
	}

	return v.([]RoleResponse), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateRoleRequest) (RoleResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update role requested", zap.Uint("id_rol", id))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("update role begin tx failed", zap.Error(tx.Error))
		return RoleResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role, err := qtx.FindByID(ctx, id)
	if err != nil {
		return RoleResponse{}, mapRepositoryError(err)
	}
	previousDepartment := role.DepartmentID

	if req.Name != nil {
		role.Name = strings.TrimSpace(*req.Name)
	}
	if req.DepartmentID != nil {
		role.DepartmentID = *req.DepartmentID
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.AccessLevel != nil {
		role.AccessLevel = *req.AccessLevel
	}
	if req.Permissions != nil {
		perms := PermissionSet(*req.Permissions)
		if perms == nil {
			perms = PermissionSet{}
		}
		role.Permissions = datatypes.NewJSONType(perms)
	}
	if req.Status != nil {
		role.Status = *req.Status
	}

	fields := apperror.FieldErrors{}
	validateRole(role, fields)
	if err := fields.Err(); err != nil {
		return RoleResponse{}, err
	}

	moved := role.DepartmentID != previousDepartment
	if moved {
		holders, err := qtx.CountEmployees(ctx, id)
		if err != nil {
			return RoleResponse{}, apperror.Internal(err)
		}
		if holders > 0 {
			return RoleResponse{}, roleerrors.ErrRoleInUse
		}
		role.Department = nil
	}

	if req.Name != nil || moved {
		if err := s.checkReferences(ctx, qtx, role, role.ID); err != nil {
			return RoleResponse{}, err
		}
	}

	if err := qtx.Update(ctx, role); err != nil {
		log.Error("update role persist failed", zap.Error(err))
		return RoleResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("update role commit failed", zap.Error(err))
		return RoleResponse{}, apperror.Internal(err)
	}

	s.invalidateCache(ctx, previousDepartment, role.DepartmentID)
	log.Info("update role success", zap.Uint("id_rol", id))

	return mapToResponse(*role), nil
}

func (s *service) Delete(ctx context.Context, id uint) (relation.Report, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("delete role requested", zap.Uint("id_rol", id))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("delete role begin tx failed", zap.Error(tx.Error))
		return relation.Report{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role, err := qtx.FindByID(ctx, id)
	if err != nil {
		return relation.Report{}, mapRepositoryError(err)
	}

	report, err := qtx.Delete(ctx, id)
	if err != nil {
		log.Error("delete role cascade failed", zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("delete role commit failed", zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	s.invalidateCache(ctx, role.DepartmentID)
	log.Info("delete role success",
		zap.Uint("id_rol", id),
		zap.Any("deleted", report.Deleted),
	)

	return report, nil
}

func (s *service) invalidateCache(ctx context.Context, departmentIDs ...uint) {
	if s.rdb == nil {
		return
	}
	seen := map[uint]bool{}
	keys := make([]string, 0, len(departmentIDs))
	for _, id := range departmentIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, cachekey.RolesByDepartment(id))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("failed to invalidate role cache",
			zap.Error(err),
			zap.Strings("keys", keys),
		)
	}
}

func mapToResponse(role Role) RoleResponse {
	resp := RoleResponse{
		ID:           role.ID,
		Name:         role.Name,
		DepartmentID: role.DepartmentID,
		Description:  role.Description,
		AccessLevel:  role.AccessLevel,
		Permissions:  map[string]bool(role.Permissions.Data()),
		Status:       role.Status,
		CreatedAt:    role.CreatedAt,
	}
	if resp.Permissions == nil {
		resp.Permissions = map[string]bool{}
	}
	if role.Department != nil {
		resp.DepartmentName = role.Department.Name
	}
	return resp
}

func mapToListResponse(roles []Role) []RoleResponse {
	res := make([]RoleResponse, len(roles))
	for i, r := range roles {
		res[i] = mapToResponse(r)
	}
	return res
}
