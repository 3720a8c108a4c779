package session

import (
	"context"
	"time"

	"go-workforce/internal/relation"
	"go-workforce/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=session_repo.go -destination=mock/session_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, s *Session) error
	FindAll(ctx context.Context, filter SessionFilter, now time.Time) ([]Session, error)
	FindByID(ctx context.Context, id uint) (*Session, error)
	UserExists(ctx context.Context, userID uint) (bool, error)
	ExistsByToken(ctx context.Context, token string) (bool, error)
	TouchLastAccess(ctx context.Context, userID uint, at time.Time) error
	Update(ctx context.Context, s *Session) error
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

func (r *repository) Create(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Omit("User").Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, filter SessionFilter, now time.Time) ([]Session, error) {
	var sessions []Session

	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(
			scope.Eq("id_usuario", filter.UserID),
			effectiveActive(filter.Active, now),
		).
		Order("fecha_inicio DESC").
		Order("id_sesion DESC").
		Find(&sessions).Error

	return sessions, err
}

func effectiveActive(active *bool, now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if active == nil {
			return db
		}
		if *active {
			return db.Where("activa = ? AND fecha_expiracion > ?", true, now)
		}
		return db.Where("(activa = ? OR fecha_expiracion <= ?)", false, now)
	}
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Session, error) {
	var s Session
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&s, "id_sesion = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&SessionUser{}).
		Where("id_usuario = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByToken(ctx context.Context, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Session{}).
		Where("token_sesion = ?", token).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) TouchLastAccess(ctx context.Context, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Table("usuarios").
		Where("id_usuario = ?", userID).
		Update("ultimo_acceso", at).Error
}

func (r *repository) Update(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Omit("User").Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id uint) (relation.Report, error) {
	return relation.Cascade(ctx, r.db, relation.KindSession, id)
}
