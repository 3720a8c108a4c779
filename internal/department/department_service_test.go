package department_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-workforce/internal/department"
	departmenterrors "go-workforce/internal/department/errors"
	departmentMock "go-workforce/internal/department/mock"
	"go-workforce/internal/relation"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/cachekey"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
	clock     *clock.Fixed
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock := testdb.NewMock(t)
	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)
	clk := &clock.Fixed{T: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	svc := department.NewService(db, repo, dbRedis, clk)

	return &serviceDeps{
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redismock: redisMock,
		clock:     clk,
	}
}

func strPtr(s string) *string { return &s }

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success defaults estado and stamps fecha_creacion", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "Finanzas", uint(0)).Return(false, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				assert.Equal(t, "Finanzas", d.Name)
				assert.Equal(t, department.StatusActive, d.Status)
				assert.Equal(t, deps.clock.T, d.CreatedAt)
				d.ID = 7
				return nil
			})
		deps.redismock.ExpectDel(cachekey.DepartmentsAll()).SetVal(1)

		resp, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "  Finanzas "})

		assert.NoError(t, err)
		assert.Equal(t, uint(7), resp.ID)
		assert.Equal(t, "activo", resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("duplicate name is a validation error on nombre", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "IT", uint(0)).Return(true, nil)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "IT", Status: "inactivo"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameTaken)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 400, httpErr.Status)
		assert.Contains(t, httpErr.Details, "nombre")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid fields are rejected before any transaction", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: " ", Status: "archivado"})

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, apperror.CodeValidation, httpErr.Code)
		assert.Contains(t, httpErr.Details, "nombre")
		assert.Contains(t, httpErr.Details, "estado")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("repo error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "Ventas", uint(0)).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed"))

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "Ventas"})

		assert.Error(t, err)
		assert.Equal(t, 500, apperror.ToHTTP(err).Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()
	cacheKey := cachekey.DepartmentsAll()

	t.Run("cache hit skips the repository", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached := []department.DepartmentResponse{
			{ID: 1, Name: "Administración", Status: "activo"},
			{ID: 2, Name: "IT", Status: "activo"},
		}
		jsonResp, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(cacheKey).SetVal(string(jsonResp))
		deps.repo.EXPECT().FindAll(gomock.Any(), gomock.Any()).Times(0)

		resp, err := deps.service.GetAll(ctx, department.DepartmentFilter{})

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "IT", resp[1].Name)
	})

	t.Run("cache miss loads from repository and fills the cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		rows := []department.Department{{ID: 3, Name: "Operaciones", Status: "activo"}}
		expected := []department.DepartmentResponse{{ID: 3, Name: "Operaciones", Status: "activo"}}
		payload, _ := json.Marshal(expected)

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any(), department.DepartmentFilter{}).Return(rows, nil).Times(1)
		deps.redismock.ExpectSet(cacheKey, payload, cachekey.TTL).SetVal("OK")

		resp, err := deps.service.GetAll(ctx, department.DepartmentFilter{})

		assert.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("filtered lists bypass the cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		filter := department.DepartmentFilter{Status: strPtr("inactivo")}
		deps.repo.EXPECT().FindAll(ctx, filter).Return([]department.Department{}, nil)

		resp, err := deps.service.GetAll(ctx, filter)

		assert.NoError(t, err)
		assert.Empty(t, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("unknown estado filter is an invalid request", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetAll(ctx, department.DepartmentFilter{Status: strPtr("borrado")})

		assert.Equal(t, apperror.CodeInvalidInput, apperror.ToHTTP(err).Code)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindAll(gomock.Any(), department.DepartmentFilter{}).Return(nil, errors.New("db down"))

		_, err := deps.service.GetAll(ctx, department.DepartmentFilter{})

		assert.Equal(t, 500, apperror.ToHTTP(err).Status)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, 99)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
		assert.Equal(t, 404, apperror.ToHTTP(err).Status)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, true)

		existing := &department.Department{ID: 4, Name: "IT", Description: "Sistemas", Status: "activo"}
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(4)).Return(existing, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				assert.Equal(t, "IT", d.Name)
				assert.Equal(t, "Sistemas", d.Description)
				assert.Equal(t, "inactivo", d.Status)
				return nil
			})
		deps.redismock.ExpectDel(cachekey.DepartmentsAll(), cachekey.RolesByDepartment(4)).SetVal(1)

		resp, err := deps.service.Update(ctx, 4, department.UpdateDepartmentRequest{Status: strPtr("inactivo")})

		assert.NoError(t, err)
		assert.Equal(t, "inactivo", resp.Status)
	})

	t.Run("rename drops the cached roles of the department", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(4)).Return(&department.Department{ID: 4, Name: "IT", Status: "activo"}, nil)
		deps.repo.EXPECT().ExistsByName(ctx, "Tecnología", uint(4)).Return(false, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(cachekey.DepartmentsAll(), cachekey.RolesByDepartment(4)).SetVal(2)

		resp, err := deps.service.Update(ctx, 4, department.UpdateDepartmentRequest{Name: strPtr("Tecnología")})

		assert.NoError(t, err)
		assert.Equal(t, "Tecnología", resp.Name)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("rename to a taken name", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(4)).Return(&department.Department{ID: 4, Name: "IT", Status: "activo"}, nil)
		deps.repo.EXPECT().ExistsByName(ctx, "Operaciones", uint(4)).Return(true, nil)

		_, err := deps.service.Update(ctx, 4, department.UpdateDepartmentRequest{Name: strPtr("Operaciones")})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameTaken)
	})

	t.Run("missing department", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 5, department.UpdateDepartmentRequest{})

		assert.Equal(t, 404, apperror.ToHTTP(err).Status)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades and invalidates both caches", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, true)

		report := relation.Report{Deleted: map[relation.Kind]int64{
			relation.KindDepartment: 1,
			relation.KindRole:       2,
			relation.KindEmployee:   3,
		}}
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(2)).Return(&department.Department{ID: 2}, nil)
		deps.repo.EXPECT().Delete(ctx, uint(2)).Return(report, nil)
		deps.redismock.ExpectDel(cachekey.DepartmentsAll(), cachekey.RolesByDepartment(2)).SetVal(2)

		got, err := deps.service.Delete(ctx, 2)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), got.Deleted[relation.KindEmployee])
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cascade failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(2)).Return(&department.Department{ID: 2}, nil)
		deps.repo.EXPECT().Delete(ctx, uint(2)).Return(relation.Report{}, errors.New("fk violation"))

		_, err := deps.service.Delete(ctx, 2)

		assert.Equal(t, 500, apperror.ToHTTP(err).Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		testdb.ExpectTx(deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, uint(8)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Delete(ctx, 8)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}
