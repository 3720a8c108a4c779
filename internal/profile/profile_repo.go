package profile

import (
	"context"

	"go-workforce/internal/relation"
	"go-workforce/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *Profile) error
	FindAll(ctx context.Context, filter ProfileFilter) ([]Profile, error)
	FindByID(ctx context.Context, id uint) (*Profile, error)
	FindByEmployee(ctx context.Context, employeeID uint) (*Profile, error)
	EmployeeExists(ctx context.Context, employeeID uint) (bool, error)
	ExistsForEmployee(ctx context.Context, employeeID uint) (bool, error)
	Update(ctx context.Context, p *Profile) error
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

func (r *repository) Create(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, filter ProfileFilter) ([]Profile, error) {
	var profiles []Profile
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(
			scope.Eq("id_empleado", filter.EmployeeID),
		).
		Order("fecha_actualizacion DESC").
		Order("id_perfil DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&p, "id_perfil = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uint) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&p, "id_empleado = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ProfileEmployee{}).
		Where("id_empleado = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsForEmployee(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Profile{}).
		Where("id_empleado = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id uint) (relation.Report, error) {
	return relation.Cascade(ctx, r.db, relation.KindProfile, id)
}
