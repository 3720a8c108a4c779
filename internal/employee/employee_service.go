package employee

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/events"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/relation"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validate = validator.New()

// salario is DECIMAL(12,2).
var maxSalary = decimal.New(1, 10)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	Search(ctx context.Context, q string) ([]EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, id uint) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) (relation.Report, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	clock  clock.Clock
	logger *zap.Logger
}

// NewService builds the employee service. A nil outbox disables lifecycle
// events.
func NewService(db *gorm.DB, repo Repository, outbox kafka.OutboxRepository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		clock:  clk,
		logger: l,
	}
}

func parseDate(fields apperror.FieldErrors, field, raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		fields.Add(field, apperror.InvalidField(field)+", expected YYYY-MM-DD")
		return nil
	}
	return &t
}

func validateEmployee(e *Employee, fields apperror.FieldErrors) {
	if e.DocumentNumber == "" {
		fields.Add("numero_documento", apperror.RequiredField("numero_documento"))
	} else if len(e.DocumentNumber) > 20 {
		fields.Add("numero_documento", "Numero Documento must be at most 20 characters")
	}
	if !ValidDocumentType(e.DocumentType) {
		fields.Add("tipo_documento", "Tipo Documento must be one of: CC, CE, PP")
	}
	if e.FirstNames == "" {
		fields.Add("nombres", apperror.RequiredField("nombres"))
	}
	if e.LastNames == "" {
		fields.Add("apellidos", apperror.RequiredField("apellidos"))
	}
	if e.Email == "" {
		fields.Add("email", apperror.RequiredField("email"))
	} else if utf8.RuneCountInString(e.Email) > 150 {
		fields.Add("email", "Email must be at most 150 characters")
	} else if validate.Var(e.Email, "email") != nil {
		fields.Add("email", "Email must be a valid email address")
	}
	if utf8.RuneCountInString(e.City) > 100 {
		fields.Add("ciudad", "Ciudad must be at most 100 characters")
	}
	if utf8.RuneCountInString(e.Photo) > 255 {
		fields.Add("foto_perfil", "Foto Perfil must be at most 255 characters")
	}
	if e.DepartmentID == 0 {
		fields.Add("id_departamento", apperror.RequiredField("id_departamento"))
	}
	if e.RoleID == 0 {
		fields.Add("id_rol", apperror.RequiredField("id_rol"))
	}
	if e.HireDate.IsZero() {
		fields.Add("fecha_ingreso", apperror.RequiredField("fecha_ingreso"))
	}
	if e.DepartureDate != nil && !e.HireDate.IsZero() && e.DepartureDate.Before(dateOnly(e.HireDate)) {
		fields.Add("fecha_salida", "Fecha Salida cannot be earlier than fecha_ingreso")
	}
	if e.Salary.Valid {
		switch salary := e.Salary.Decimal; {
		case salary.IsNegative():
			fields.Add("salario", "Salario must be greater than or equal to 0")
		case salary.GreaterThanOrEqual(maxSalary):
			fields.Add("salario", "Salario must be less than 10000000000")
		case !salary.Equal(salary.Round(2)):
			fields.Add("salario", "Salario must have at most 2 decimal places")
		}
	}
	if !ValidStatus(e.Status) {
		fields.Add("estado", "Estado must be one of: activo, inactivo, suspendido")
	} else if e.Status == StatusInactive && e.DepartureDate == nil {
		fields.Add("fecha_salida", "Fecha Salida is required when estado is inactivo")
	}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create employee requested",
		zap.Uint("id_departamento", req.DepartmentID),
		zap.Uint("id_rol", req.RoleID),
		zap.String("email", req.Email),
	)

	now := s.clock.Now()
	fields := apperror.FieldErrors{}
	empl := &Employee{
		DocumentNumber: strings.TrimSpace(req.DocumentNumber),
		DocumentType:   req.DocumentType,
		FirstNames:     strings.TrimSpace(req.FirstNames),
		LastNames:      strings.TrimSpace(req.LastNames),
		Email:          strings.TrimSpace(req.Email),
		Phone:          req.Phone,
		BirthDate:      parseDate(fields, "fecha_nacimiento", req.BirthDate),
		Address:        req.Address,
		City:           req.City,
		DepartmentID:   req.DepartmentID,
		RoleID:         req.RoleID,
		DepartureDate:  parseDate(fields, "fecha_salida", req.DepartureDate),
		Salary:         nullDecimal(req.Salary),
		Photo:          req.Photo,
		Status:         req.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if hire := parseDate(fields, "fecha_ingreso", req.HireDate); hire != nil {
		empl.HireDate = *hire
	}
	if empl.DocumentType == "" {
		empl.DocumentType = DocumentCC
	}
	if empl.Status == "" {
		empl.Status = StatusActive
	}

	validateEmployee(empl, fields)
	if err := fields.Err(); err != nil {
		return EmployeeResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("create employee begin tx failed", zap.Error(tx.Error))
		return EmployeeResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.checkReferences(ctx, qtx, empl); err != nil {
		return EmployeeResponse{}, err
	}
	if err := s.checkUnique(ctx, qtx, empl, true, true); err != nil {
		return EmployeeResponse{}, err
	}

	if err := qtx.Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeCreated, empl, nil); err != nil {
		log.Error("create employee outbox persist failed",
			zap.Uint("id_empleado", empl.ID),
			zap.Error(err),
		)
		return EmployeeResponse{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Internal(err)
	}

	log.Info("create employee success", zap.Uint("id_empleado", empl.ID))

	return mapToResponse(*empl), nil
}

// checkReferences verifies the department exists and the role belongs to it.
func (s *service) checkReferences(ctx context.Context, qtx Repository, empl *Employee) error {
	exists, err := qtx.DepartmentExists(ctx, empl.DepartmentID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !exists {
		return employeeerrors.ErrDepartmentMissing
	}

	role, err := qtx.FindRole(ctx, empl.RoleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrRoleMissing
	}
	if err != nil {
		return apperror.Internal(err)
	}
	if role.DepartmentID != empl.DepartmentID {
		return employeeerrors.ErrRoleOutsideDepartment
	}
	return nil
}

func (s *service) checkUnique(ctx context.Context, qtx Repository, empl *Employee, email, document bool) error {
	if email {
		taken, err := qtx.ExistsByEmail(ctx, empl.Email, empl.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		if taken {
			return employeeerrors.ErrEmailTaken
		}
	}
	if document {
		taken, err := qtx.ExistsByDocument(ctx, empl.DocumentNumber, empl.ID)
		if err != nil {
			return apperror.Internal(err)
		}
		if taken {
			return employeeerrors.ErrDocumentTaken
		}
	}
	return nil
}

// enqueue writes a lifecycle event to the outbox inside tx.
func (s *service) enqueue(ctx context.Context, tx *gorm.DB, eventType string, empl *Employee, report *relation.Report) error {
	if s.outbox == nil {
		return nil
	}

	event := events.EmployeeLifecycleEvent{
		EventType:    eventType,
		RequestID:    contextutil.GetRequestID(ctx),
		EmployeeID:   empl.ID,
		DepartmentID: empl.DepartmentID,
		FullName:     empl.FullName(),
		Email:        empl.Email,
		OccurredAt:   s.clock.Now().UTC(),
	}
	if report != nil {
		event.Deleted = make(map[string]int64, len(report.Deleted))
		for kind, n := range report.Deleted {
			event.Deleted[string(kind)] = n
		}
	}

	row, err := kafka.NewOutboxEvent(ctx, "employee", empl.ID, eventType, events.EmployeeLifecycleTopic, event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, row)
}

func (s *service) GetAll(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error) {
	if filter.Status != nil && !ValidStatus(*filter.Status) {
		return nil, apperror.InvalidRequest("estado must be one of: activo, inactivo, suspendido")
	}

	employees, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Search(ctx context.Context, q string) ([]EmployeeResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, employeeerrors.ErrEmptySearch
	}

	employees, err := s.repo.Search(ctx, q, SearchLimit)
	if err != nil {
		s.logger.Error("search employees failed", zap.String("q", q), zap.Error(err))
		return nil, apperror.Internal(err)
	}
	return mapToListResponse(employees), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update employee requested", zap.Uint("id_empleado", id))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("update employee begin tx failed", zap.Error(tx.Error))
		return EmployeeResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	before := *empl

	fields := apperror.FieldErrors{}
	applyUpdate(empl, req, fields)
	validateEmployee(empl, fields)
	if err := fields.Err(); err != nil {
		return EmployeeResponse{}, err
	}

	if empl.DepartmentID != before.DepartmentID || empl.RoleID != before.RoleID {
		if err := s.checkReferences(ctx, qtx, empl); err != nil {
			return EmployeeResponse{}, err
		}
		empl.Department = nil
		empl.Role = nil
	}
	emailChanged := !strings.EqualFold(empl.Email, before.Email)
	documentChanged := empl.DocumentNumber != before.DocumentNumber
	if err := s.checkUnique(ctx, qtx, empl, emailChanged, documentChanged); err != nil {
		return EmployeeResponse{}, err
	}

	empl.UpdatedAt = s.clock.Now()
	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Internal(err)
	}

	log.Info("update employee success", zap.Uint("id_empleado", id))

	return mapToResponse(*empl), nil
}

func applyUpdate(e *Employee, req UpdateEmployeeRequest, fields apperror.FieldErrors) {
	if req.DocumentNumber != nil {
		e.DocumentNumber = strings.TrimSpace(*req.DocumentNumber)
	}
	if req.DocumentType != nil {
		e.DocumentType = *req.DocumentType
	}
	if req.FirstNames != nil {
		e.FirstNames = strings.TrimSpace(*req.FirstNames)
	}
	if req.LastNames != nil {
		e.LastNames = strings.TrimSpace(*req.LastNames)
	}
	if req.Email != nil {
		e.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		e.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		e.BirthDate = parseDate(fields, "fecha_nacimiento", *req.BirthDate)
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.City != nil {
		e.City = *req.City
	}
	if req.DepartmentID != nil {
		e.DepartmentID = *req.DepartmentID
	}
	if req.RoleID != nil {
		e.RoleID = *req.RoleID
	}
	if req.HireDate != nil {
		if hire := parseDate(fields, "fecha_ingreso", *req.HireDate); hire != nil {
			e.HireDate = *hire
		} else if !fields.Has("fecha_ingreso") {
			fields.Add("fecha_ingreso", apperror.RequiredField("fecha_ingreso"))
		}
	}
	if req.DepartureDate != nil {
		e.DepartureDate = parseDate(fields, "fecha_salida", *req.DepartureDate)
	}
	if req.Salary != nil {
		e.Salary = nullDecimal(req.Salary)
	}
	if req.Photo != nil {
		e.Photo = *req.Photo
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
}

// Deactivate is the soft delete: the row stays, estado becomes inactivo and
// fecha_salida today. Deactivating an inactive employee changes nothing.
func (s *service) Deactivate(ctx context.Context, id uint) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("deactivate employee requested", zap.Uint("id_empleado", id))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("deactivate employee begin tx failed", zap.Error(tx.Error))
		return EmployeeResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	changed, err := empl.Deactivate(clock.Today(s.clock))
	if err != nil {
		return EmployeeResponse{}, err
	}
	if !changed {
		log.Info("deactivate employee skipped, already inactive", zap.Uint("id_empleado", id))
		return mapToResponse(*empl), nil
	}

	empl.UpdatedAt = s.clock.Now()
	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("deactivate employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeDeactivated, empl, nil); err != nil {
		log.Error("deactivate employee outbox persist failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("deactivate employee commit failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Internal(err)
	}

	log.Info("deactivate employee success", zap.Uint("id_empleado", id))

	return mapToResponse(*empl), nil
}

// Delete removes the employee permanently together with its user accounts
// (and their sessions, notifications and activities) and its profile.
func (s *service) Delete(ctx context.Context, id uint) (relation.Report, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("delete employee requested", zap.Uint("id_empleado", id))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("delete employee begin tx failed", zap.Error(tx.Error))
		return relation.Report{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return relation.Report{}, mapRepositoryError(err)
	}

	report, err := qtx.Delete(ctx, id)
	if err != nil {
		log.Error("delete employee cascade failed", zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeDeleted, empl, &report); err != nil {
		log.Error("delete employee outbox persist failed", zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	log.Info("delete employee success",
		zap.Uint("id_empleado", id),
		zap.Any("deleted", report.Deleted),
	)

	return report, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID,
		DocumentNumber: empl.DocumentNumber,
		DocumentType:   empl.DocumentType,
		FirstNames:     empl.FirstNames,
		LastNames:      empl.LastNames,
		FullName:       empl.FullName(),
		Email:          empl.Email,
		Phone:          empl.Phone,
		BirthDate:      formatDate(empl.BirthDate),
		Address:        empl.Address,
		City:           empl.City,
		DepartmentID:   empl.DepartmentID,
		RoleID:         empl.RoleID,
		HireDate:       empl.HireDate.Format(dateLayout),
		DepartureDate:  formatDate(empl.DepartureDate),
		Photo:          empl.Photo,
		Status:         empl.Status,
		CreatedAt:      empl.CreatedAt,
		UpdatedAt:      empl.UpdatedAt,
	}
	if empl.Salary.Valid {
		salary := empl.Salary.Decimal
		resp.Salary = &salary
	}
	if empl.Department != nil {
		resp.DepartmentName = empl.Department.Name
	}
	if empl.Role != nil {
		resp.RoleName = empl.Role.Name
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
