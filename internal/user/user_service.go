package user

import (
	"context"
	"strings"
	"unicode/utf8"

	"go-workforce/internal/relation"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"
	usererrors "go-workforce/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	minPasswordLen = 8
	// bcrypt only accepts inputs up to this many bytes.
	maxPasswordBytes = 72
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context, filter UserFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id uint) (UserResponse, error)
	Update(ctx context.Context, id uint, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id uint) (relation.Report, error)

	Lock(ctx context.Context, id uint) (UserResponse, error)
	Unlock(ctx context.Context, id uint) (UserResponse, error)
	RecordFailedLogin(ctx context.Context, id uint) (UserResponse, error)
}

type service struct {
	db         *gorm.DB
	repo       Repository
	clock      clock.Clock
	logger     *zap.Logger
	bcryptCost int
}

func NewService(db *gorm.DB, repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:         db,
		repo:       repo,
		clock:      clk,
		logger:     l,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func validateUsername(username string, fields apperror.FieldErrors) {
	switch {
	case username == "":
		fields.Add("username", apperror.RequiredField("username"))
	case utf8.RuneCountInString(username) > 50:
		fields.Add("username", "Username must be at most 50 characters")
	case strings.ContainsAny(username, " \t\n"):
		fields.Add("username", "Username cannot contain spaces")
	}
}

func validatePassword(password string, fields apperror.FieldErrors) {
	switch {
	case utf8.RuneCountInString(password) < minPasswordLen:
		fields.Add("password", "Password must be at least 8 characters")
	case len(password) > maxPasswordBytes:
		fields.Add("password", "Password must be at most 72 bytes")
	}
}

func (s *service) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Info("creating user",
		zap.Uint("id_empleado", req.EmployeeID),
		zap.String("username", req.Username),
	)

	username := strings.TrimSpace(req.Username)
	status := req.Status
	if status == "" {
		status = StatusActive
	}

	fields := apperror.FieldErrors{}
	validateUsername(username, fields)
	validatePassword(req.Password, fields)
	if req.EmployeeID == 0 {
		fields.Add("id_empleado", apperror.RequiredField("id_empleado"))
	}
	if !ValidEditableStatus(status) {
		fields.Add("estado", "Estado must be one of: activo, inactivo")
	}
	if err := fields.Err(); err != nil {
		return UserResponse{}, err
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, apperror.Internal(err)
	}

	settings := Settings{}
	if req.Settings != nil {
		settings = *req.Settings
	}
	now := s.clock.Now()
	u := &User{
		EmployeeID:   req.EmployeeID,
		Username:     username,
		PasswordHash: hashed,
		Settings:     datatypes.NewJSONType(settings),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return UserResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, u.EmployeeID)
	if err != nil {
		return UserResponse{}, apperror.Internal(err)
	}
	if !exists {
		return UserResponse{}, usererrors.ErrEmployeeMissing
	}
	if err := s.checkUsername(ctx, qtx, u); err != nil {
		return UserResponse{}, err
	}

	if err := qtx.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return UserResponse{}, apperror.Internal(err)
	}

	log.Info("user created successfully", zap.Uint("id_usuario", u.ID))
	return mapToResponse(*u), nil
}

func (s *service) checkUsername(ctx context.Context, qtx Repository, u *User) error {
	taken, err := qtx.ExistsByUsername(ctx, u.Username, u.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if taken {
		return usererrors.ErrUsernameTaken
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, filter UserFilter) ([]UserResponse, error) {
	if filter.Status != nil && !ValidStatus(*filter.Status) {
		return nil, apperror.InvalidRequest("estado must be one of: activo, inactivo, bloqueado")
	}

	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to list users", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateUserRequest) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	fields := apperror.FieldErrors{}
	if req.Username != nil {
		validateUsername(strings.TrimSpace(*req.Username), fields)
	}
	if req.Password != nil {
		validatePassword(*req.Password, fields)
	}
	if req.Status != nil && !ValidEditableStatus(*req.Status) {
		fields.Add("estado", "Estado must be one of: activo, inactivo")
	}
	if err := fields.Err(); err != nil {
		return UserResponse{}, err
	}

	var hashed string
	if req.Password != nil {
		var err error
		if hashed, err = s.hash(*req.Password); err != nil {
			log.Error("failed to hash new password", zap.Error(err))
			return UserResponse{}, apperror.Internal(err)
		}
	}

	return s.mutate(ctx, id, "update", func(qtx Repository, u *User) error {
		if req.Status != nil && u.Locked {
			return usererrors.ErrUserLocked
		}
		if req.Username != nil {
			u.Username = strings.TrimSpace(*req.Username)
			if err := s.checkUsername(ctx, qtx, u); err != nil {
				return err
			}
		}
		if hashed != "" {
			u.PasswordHash = hashed
		}
		if req.Settings != nil {
			u.Settings = datatypes.NewJSONType(*req.Settings)
		}
		if req.Status != nil {
			u.Status = *req.Status
		}
		return nil
	})
}

func (s *service) Lock(ctx context.Context, id uint) (UserResponse, error) {
	return s.mutate(ctx, id, "lock", func(_ Repository, u *User) error {
		u.Lock(s.clock.Now())
		return nil
	})
}

func (s *service) Unlock(ctx context.Context, id uint) (UserResponse, error) {
	return s.mutate(ctx, id, "unlock", func(_ Repository, u *User) error {
		u.Unlock()
		return nil
	})
}

// mutate loads the user inside a transaction, applies fn and saves it.
func (s *service) mutate(ctx context.Context, id uint, op string, fn func(qtx Repository, u *User) error) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return UserResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := fn(qtx, u); err != nil {
		return UserResponse{}, err
	}
	u.UpdatedAt = s.clock.Now()

	if err := qtx.Update(ctx, u); err != nil {
		log.Error("failed to save user", zap.String("op", op), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return UserResponse{}, apperror.Internal(err)
	}

	log.Info("user saved", zap.String("op", op), zap.Uint("id_usuario", id))
	return mapToResponse(*u), nil
}

// RecordFailedLogin only counts. Whether and when to lock is up to the
// caller.
func (s *service) RecordFailedLogin(ctx context.Context, id uint) (UserResponse, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return UserResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.IncrementFailedAttempts(ctx, id, s.clock.Now()); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return UserResponse{}, apperror.Internal(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("failed login recorded",
		zap.Uint("id_usuario", id),
		zap.Int("intentos_fallidos", u.FailedAttempts),
	)
	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id uint) (relation.Report, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return relation.Report{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return relation.Report{}, mapRepositoryError(err)
	}

	report, err := qtx.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete user", zap.Uint("id_usuario", id), zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		return relation.Report{}, apperror.Internal(err)
	}

	log.Info("user deleted",
		zap.Uint("id_usuario", id),
		zap.Any("deleted", report.Deleted),
		zap.Any("nullified", report.Nullified),
	)
	return report, nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		EmployeeID:     u.EmployeeID,
		Username:       u.Username,
		LastAccess:     u.LastAccess,
		FailedAttempts: u.FailedAttempts,
		Locked:         u.Locked,
		LockedAt:       u.LockedAt,
		TokenExpiresAt: u.TokenExpiresAt,
		Settings:       u.Settings.Data(),
		Status:         u.Status,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if u.Employee != nil {
		resp.EmployeeName = u.Employee.FullName()
		resp.EmployeeEmail = u.Employee.Email
	}
	return resp
}
