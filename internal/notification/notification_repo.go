package notification

import (
	"context"
	"time"

	"go-workforce/internal/relation"
	"go-workforce/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, n *Notification) error
	FindAll(ctx context.Context, filter NotificationFilter) ([]Notification, error)
	FindByID(ctx context.Context, id uint) (*Notification, error)
	UserExists(ctx context.Context, userID uint) (bool, error)
	MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error)
	Update(ctx context.Context, n *Notification) error
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

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Omit("User").Create(n).Error
}

// FindAll lists newest first.
func (r *repository) FindAll(ctx context.Context, filter NotificationFilter) ([]Notification, error) {
	var notifications []Notification
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(
			scope.Eq("id_usuario", filter.UserID),
			scope.Eq("leida", filter.Read),
			scope.Eq("categoria", filter.Category),
			scope.Eq("tipo", filter.Type),
		).
		Order("fecha_creacion DESC").
		Order("id_notificacion DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&n, "id_notificacion = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repository) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&NotificationUser{}).
		Where("id_usuario = ?", userID).
		Count(&count).Error
	return count > 0, err
}

// MarkAllRead only touches unread rows so earlier read times survive.
func (r *repository) MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id_usuario = ? AND leida = ?", userID, false).
		Updates(map[string]any{
			"leida":         true,
			"fecha_lectura": at,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Update(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Omit("User").Save(n).Error
}

func (r *repository) Delete(ctx context.Context, id uint) (relation.Report, error) {
	return relation.Cascade(ctx, r.db, relation.KindNotification, id)
}
