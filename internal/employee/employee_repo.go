package employee

import (
	"context"

	"go-workforce/internal/relation"
	"go-workforce/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	Search(ctx context.Context, q string, limit int) ([]Employee, error)
	DepartmentExists(ctx context.Context, departmentID uint) (bool, error)
	FindRole(ctx context.Context, roleID uint) (*EmployeeRole, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ExistsByDocument(ctx context.Context, documentNumber string, excludeID uint) (bool, error)
	Update(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit("Department", "Role").Create(empl).Error
}

func (r *repository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Department").Preload("Role")
}

func (r *repository) FindAll(ctx context.Context, filter EmployeeFilter) ([]Employee, error) {
	var employees []Employee
	err := r.withRefs(ctx).
		Scopes(
			scope.Status(filter.Status),
			scope.Eq("id_departamento", filter.DepartmentID),
			scope.Eq("id_rol", filter.RoleID),
			scope.OrderByID("id_empleado"),
		).
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var empl Employee
	if err := r.withRefs(ctx).First(&empl, "id_empleado = ?", id).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

// Search matches q case-insensitively against names, email and document
// number.
func (r *repository) Search(ctx context.Context, q string, limit int) ([]Employee, error) {
	var employees []Employee
	err := r.withRefs(ctx).
		Scopes(
			scope.ContainsAny(q, "nombres", "apellidos", "email", "numero_documento"),
			scope.OrderByID("id_empleado"),
			scope.Limit(limit),
		).
		Find(&employees).Error
	return employees, err
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EmployeeDepartment{}).
		Where("id_departamento = ?", departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindRole(ctx context.Context, roleID uint) (*EmployeeRole, error) {
	var role EmployeeRole
	if err := r.db.WithContext(ctx).First(&role, "id_rol = ?", roleID).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.exists(ctx, "LOWER(email) = LOWER(?)", email, excludeID)
}

func (r *repository) ExistsByDocument(ctx context.Context, documentNumber string, excludeID uint) (bool, error) {
	return r.exists(ctx, "numero_documento = ?", documentNumber, excludeID)
}

func (r *repository) exists(ctx context.Context, cond string, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&Employee{}).Where(cond, value)
	if excludeID != 0 {
		q = q.Where("id_empleado <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit("Department", "Role").Save(empl).Error
}

// Delete hard deletes the employee with its user accounts and profile.
// Must run inside a transaction.
func (r *repository) Delete(ctx context.Context, id uint) (relation.Report, error) {
	return relation.Cascade(ctx, r.db, relation.KindEmployee, id)
}
