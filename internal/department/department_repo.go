package department

import (
	"context"

	"go-workforce/internal/relation"
	"go-workforce/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context, filter DepartmentFilter) ([]Department, error)
	FindByID(ctx context.Context, id uint) (*Department, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	Update(ctx context.Context, dept *Department) error
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context, filter DepartmentFilter) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(scope.Status(filter.Status)).
		Order("nombre ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Department, error) {
	var dept Department
	err := r.db.WithContext(ctx).First(&dept, "id_departamento = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

// ExistsByName checks the global name uniqueness, case-sensitively like the
// database constraint. excludeID skips the row being updated.
func (r *repository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&Department{}).Where("nombre = ?", name)
	if excludeID != 0 {
		q = q.Where("id_departamento <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

// Delete removes the department with its roles and employees and everything
// they own. Must run inside a transaction.
func (r *repository) Delete(ctx context.Context, id uint) (relation.Report, error) {
	return relation.Cascade(ctx, r.db, relation.KindDepartment, id)
}
