package employee_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-workforce/internal/department"
	"go-workforce/internal/employee"
	"go-workforce/internal/role"
	"go-workforce/internal/shared/testdb"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repoFixture struct {
	db   *gorm.DB
	repo employee.Repository
	dept *department.Department
	role *role.Role
}

func setupRepo(t *testing.T) *repoFixture {
	db := testdb.Open(t, &department.Department{}, &role.Role{}, &employee.Employee{})
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	dept := &department.Department{Name: "IT", Status: department.StatusActive, CreatedAt: now}
	require.NoError(t, db.Create(dept).Error)
	r := &role.Role{
		Name:         "Desarrollador",
		DepartmentID: dept.ID,
		AccessLevel:  role.AccessAdvanced,
		Permissions:  datatypes.NewJSONType(role.PermissionSet{}),
		Status:       role.StatusActive,
		CreatedAt:    now,
	}
	require.NoError(t, db.Omit("Department").Create(r).Error)

	return &repoFixture{db: db, repo: employee.NewRepository(db), dept: dept, role: r}
}

func (f *repoFixture) add(t *testing.T, doc, first, last, email, status string) *employee.Employee {
	t.Helper()
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	e := &employee.Employee{
		DocumentNumber: doc,
		DocumentType:   employee.DocumentCC,
		FirstNames:     first,
		LastNames:      last,
		Email:          email,
		DepartmentID:   f.dept.ID,
		RoleID:         f.role.ID,
		HireDate:       time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Salary:         decimal.NewNullDecimal(decimal.RequireFromString("2500000.00")),
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, f.repo.Create(context.Background(), e))
	return e
}

func TestEmployeeRepository_FindAndFilter(t *testing.T) {
	ctx := context.Background()
	f := setupRepo(t)

	laura := f.add(t, "100", "Laura", "Gómez", "laura@empresa.co", employee.StatusActive)
	f.add(t, "200", "Pedro", "Ruiz", "pedro@empresa.co", employee.StatusSuspended)

	t.Run("FindByID preloads department and role names", func(t *testing.T) {
		got, err := f.repo.FindByID(ctx, laura.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Department)
		require.NotNil(t, got.Role)
		assert.Equal(t, "IT", got.Department.Name)
		assert.Equal(t, "Desarrollador", got.Role.Name)
		assert.True(t, got.Salary.Valid)
		assert.True(t, got.Salary.Decimal.Equal(decimal.NewFromInt(2500000)))
	})

	t.Run("FindAll filters conjunctively", func(t *testing.T) {
		suspended := employee.StatusSuspended
		got, err := f.repo.FindAll(ctx, employee.EmployeeFilter{Status: &suspended, DepartmentID: &f.dept.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pedro", got[0].FirstNames)

		other := f.dept.ID + 1
		got, err = f.repo.FindAll(ctx, employee.EmployeeFilter{Status: &suspended, DepartmentID: &other})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("uniqueness probes", func(t *testing.T) {
		taken, err := f.repo.ExistsByEmail(ctx, "LAURA@empresa.co", 0)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = f.repo.ExistsByEmail(ctx, "laura@empresa.co", laura.ID)
		require.NoError(t, err)
		assert.False(t, taken)

		taken, err = f.repo.ExistsByDocument(ctx, "200", 0)
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("FindRole exposes the owning department", func(t *testing.T) {
		r, err := f.repo.FindRole(ctx, f.role.ID)
		require.NoError(t, err)
		assert.Equal(t, f.dept.ID, r.DepartmentID)

		_, err = f.repo.FindRole(ctx, 999)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Update ignores preloaded references", func(t *testing.T) {
		got, err := f.repo.FindByID(ctx, laura.ID)
		require.NoError(t, err)
		got.Phone = "3001234567"
		got.Department.Name = "changed"
		require.NoError(t, f.repo.Update(ctx, got))

		again, err := f.repo.FindByID(ctx, laura.ID)
		require.NoError(t, err)
		assert.Equal(t, "3001234567", again.Phone)
		assert.Equal(t, "IT", again.Department.Name)
	})
}

func TestEmployeeRepository_Search(t *testing.T) {
	ctx := context.Background()
	f := setupRepo(t)

	for i := 1; i <= 25; i++ {
		f.add(t, fmt.Sprintf("9%03d", i), "Ana", fmt.Sprintf("Torres %d", i), fmt.Sprintf("ana%d@empresa.co", i), employee.StatusActive)
	}
	f.add(t, "5555", "Carlos", "Díaz", "c_diaz@empresa.co", employee.StatusActive)
	f.add(t, "5556", "Camila", "Rojas", "cxdiaz@empresa.co", employee.StatusInactive)

	t.Run("caps results at the limit in id order", func(t *testing.T) {
		got, err := f.repo.Search(ctx, "ana", employee.SearchLimit)
		require.NoError(t, err)
		require.Len(t, got, employee.SearchLimit)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1].ID, got[i].ID)
		}
	})

	t.Run("case insensitive across columns", func(t *testing.T) {
		got, err := f.repo.Search(ctx, "CARLOS", employee.SearchLimit)
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = f.repo.Search(ctx, "5556", employee.SearchLimit)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Camila", got[0].FirstNames)
	})

	t.Run("underscore is matched literally", func(t *testing.T) {
		got, err := f.repo.Search(ctx, "c_diaz", employee.SearchLimit)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Carlos", got[0].FirstNames)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := f.repo.Search(ctx, "zzz", employee.SearchLimit)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
