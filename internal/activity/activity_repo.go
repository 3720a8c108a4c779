package activity

import (
	"context"

	"go-workforce/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=activity_repo.go -destination=mock/activity_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *Activity) error
	FindAll(ctx context.Context, filter ActivityFilter) ([]Activity, error)
	FindByID(ctx context.Context, id uint) (*Activity, error)
	UserExists(ctx context.Context, userID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Activity) error {
	return r.db.WithContext(ctx).Omit("User").Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, filter ActivityFilter) ([]Activity, error) {
	var activities []Activity
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(
			scope.Eq("id_usuario", filter.UserID),
			scope.Eq("modulo", filter.Module),
		).
		Order("fecha_actividad DESC").
		Order("id_actividad DESC").
		Find(&activities).Error
	return activities, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Activity, error) {
	var a Activity
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&a, "id_actividad = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ActivityUser{}).
		Where("id_usuario = ?", userID).
		Count(&count).Error
	return count > 0, err
}
