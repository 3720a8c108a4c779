package systemlog

import (
	"context"

	"go-workforce/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=systemlog_repo.go -destination=mock/systemlog_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	FindAll(ctx context.Context, filter LogFilter) ([]Entry, error)
	FindByID(ctx context.Context, id uint) (*Entry, error)
	UserExists(ctx context.Context, userID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Omit("User").Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, filter LogFilter) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(
			scope.Eq("nivel", filter.Level),
			scope.Eq("modulo", filter.Module),
			scope.Eq("id_usuario", filter.UserID),
		).
		Order("fecha_log DESC").
		Order("id_log DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Entry, error) {
	var e Entry
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&e, "id_log = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LogUser{}).
		Where("id_usuario = ?", userID).
		Count(&count).Error
	return count > 0, err
}
