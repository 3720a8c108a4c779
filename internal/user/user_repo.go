package user

import (
	"context"
	"time"

	"go-workforce/internal/relation"
	"go-workforce/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, u *User) error
	FindAll(ctx context.Context, filter UserFilter) ([]User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	EmployeeExists(ctx context.Context, employeeID uint) (bool, error)
	ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error)
	IncrementFailedAttempts(ctx context.Context, id uint, at time.Time) error
	Update(ctx context.Context, u *User) error
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

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(u).Error
}

func (r *repository) FindAll(ctx context.Context, filter UserFilter) ([]User, error) {
	var users []User

	// joined columns must be qualified, empleados also has estado
	err := r.db.WithContext(ctx).
		Joins("Employee").
		Scopes(
			scope.Eq("usuarios.estado", filter.Status),
			scope.Eq("usuarios.id_empleado", filter.EmployeeID),
			scope.Eq("usuarios.bloqueado", filter.Locked),
			scope.OrderByID("usuarios.id_usuario"),
		).
		Find(&users).Error

	return users, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&u, "id_usuario = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&UserEmployee{}).
		Where("id_empleado = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&User{}).Where("username = ?", username)
	if excludeID != 0 {
		q = q.Where("id_usuario <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// IncrementFailedAttempts bumps the counter in one UPDATE statement.
func (r *repository) IncrementFailedAttempts(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id_usuario = ?", id).
		Updates(map[string]any{
			"intentos_fallidos":  gorm.Expr("intentos_fallidos + 1"),
			"fecha_modificacion": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Omit("Employee").Save(u).Error
}

// Delete removes the user with its sessions, notifications and activities.
// System log rows keep their content but lose the user reference. Must run
// inside a transaction.
func (r *repository) Delete(ctx context.Context, id uint) (relation.Report, error) {
	return relation.Cascade(ctx, r.db, relation.KindUser, id)
}
