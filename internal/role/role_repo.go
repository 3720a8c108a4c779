package role

import (
	"context"

	"go-workforce/internal/relation"
	"go-workforce/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=role_repo.go -destination=mock/role_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, role *Role) error
	FindAll(ctx context.Context, filter RoleFilter) ([]Role, error)
	FindByID(ctx context.Context, id uint) (*Role, error)
	FindActiveByDepartment(ctx context.Context, departmentID uint) ([]Role, error)
	DepartmentExists(ctx context.Context, departmentID uint) (bool, error)
	ExistsByName(ctx context.Context, departmentID uint, name string, excludeID uint) (bool, error)
	CountEmployees(ctx context.Context, roleID uint) (int64, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uint) (relation.Report, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Omit("Department").Create(role).Error
}

func (r *repository) FindAll(ctx context.Context, filter RoleFilter) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).
		Preload("Department").
		Scopes(
			scope.Status(filter.Status),
			scope.Eq("id_departamento", filter.DepartmentID),
			scope.Eq("nivel_acceso", filter.AccessLevel),
		).
		Order("id_rol ASC").
		Find(&roles).Error
	return roles, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).
		Preload("Department").
		First(&role, "id_rol = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) FindActiveByDepartment(ctx context.Context, departmentID uint) ([]Role, error) {
	active := StatusActive
	return r.FindAll(ctx, RoleFilter{Status: &active, DepartmentID: &departmentID})
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RoleDepartment{}).
		Where("id_departamento = ?", departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByName(ctx context.Context, departmentID uint, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&Role{}).
		Where("id_departamento = ? AND nombre = ?", departmentID, name)
	if excludeID != 0 {
		q = q.Where("id_rol <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) CountEmployees(ctx context.Context, roleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("empleados").
		Where("id_rol = ?", roleID).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, role *Role) error {
	// the preloaded department is read-only
	return r.db.WithContext(ctx).Omit("Department").Save(role).Error
}

// Delete removes the role and every employee holding it. Must run inside a
// transaction.
func (r *repository) Delete(ctx context.Context, id uint) (relation.Report, error) {
	return relation.Cascade(ctx, r.db, relation.KindRole, id)
}
