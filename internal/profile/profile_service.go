package profile

import (
	"context"
	"strings"

	profileerrors "go-workforce/internal/profile/errors"
	"go-workforce/internal/relation"
	"go-workforce/internal/shared/apperror"
	"go-workforce/internal/shared/clock"
	"go-workforce/internal/shared/contextutil"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var validate = validator.New()

//go:generate mockgen -source=profile_service.go -destination=mock/profile_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error)
	GetAll(ctx context.Context, filter ProfileFilter) ([]ProfileResponse, error)
	GetByID(ctx context.Context, id uint) (ProfileResponse, error)
	GetByEmployee(ctx context.Context, employeeID uint) (ProfileResponse, error)
	Update(ctx context.Context, id uint, req UpdateProfileRequest) (ProfileResponse, error)
	Delete(ctx context.Context, id uint) (relation.Report, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("profile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("profile.service")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		db:     db,
		repo:   repo,
		clock:  clk,
		logger: l,
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func validateProfile(p *Profile, fields apperror.FieldErrors) {
	for _, skill := range p.Skills {
		if strings.TrimSpace(skill) == "" {
			fields.Add("habilidades", "Habilidades cannot contain empty entries")
			break
		}
	}
	for _, e := range p.WorkExperience {
		if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Position) == "" {
			fields.Add("experiencia_laboral", "Every entry needs empresa and cargo")
			break
		}
	}
	for _, e := range p.Education {
		if strings.TrimSpace(e.Institution) == "" {
			fields.Add("educacion", "Every entry needs institucion")
			break
		}
	}
	for _, c := range p.Certifications {
		if strings.TrimSpace(c.Name) == "" {
			fields.Add("certificaciones", "Every entry needs nombre")
			break
		}
	}
	for _, l := range p.Languages {
		if strings.TrimSpace(l.Name) == "" {
			fields.Add("idiomas", "Every entry needs idioma")
			break
		}
	}
	for network, link := range p.SocialLinks.Data() {
		if validate.Var(link, "required,url") != nil {
			fields.Add("redes_sociales", "Link for "+network+" must be a valid URL")
			break
		}
	}
}

func (s *service) Create(ctx context.Context, req CreateProfileRequest) (ProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	links := req.SocialLinks
	if links == nil {
		links = SocialLinks{}
	}
	prefs := NotificationPreferences{}
	if req.NotificationPrefs != nil {
		prefs = *req.NotificationPrefs
	}
	p := &Profile{
		EmployeeID:        req.EmployeeID,
		Bio:               req.Bio,
		Skills:            orEmpty(req.Skills),
		WorkExperience:    orEmpty(req.WorkExperience),
		Education:         orEmpty(req.Education),
		Certifications:    orEmpty(req.Certifications),
		Languages:         orEmpty(req.Languages),
		SocialLinks:       datatypes.NewJSONType(links),
		NotificationPrefs: datatypes.NewJSONType(prefs),
		UpdatedAt:         s.clock.Now(),
	}

	fields := apperror.FieldErrors{}
	if p.EmployeeID == 0 {
		fields.Add("id_empleado", apperror.RequiredField("id_empleado"))
	}
	validateProfile(p, fields)
	if err := fields.Err(); err != nil {
		return ProfileResponse{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ProfileResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, p.EmployeeID)
	if err != nil {
		return ProfileResponse{}, apperror.Internal(err)
	}
	if !exists {
		return ProfileResponse{}, profileerrors.ErrEmployeeMissing
	}
	taken, err := qtx.ExistsForEmployee(ctx, p.EmployeeID)
	if err != nil {
		return ProfileResponse{}, apperror.Internal(err)
	}
	if taken {
		return ProfileResponse{}, profileerrors.ErrProfileExists
	}

	if err := qtx.Create(ctx, p); err != nil {
		log.Error("failed to create profile", zap.Uint("id_empleado", p.EmployeeID), zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return ProfileResponse{}, apperror.Internal(err)
	}

	log.Info("profile created", zap.Uint("id_perfil", p.ID), zap.Uint("id_empleado", p.EmployeeID))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, filter ProfileFilter) ([]ProfileResponse, error) {
	profiles, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to list profiles", zap.Error(err))
		return nil, apperror.Internal(err)
	}

	resp := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (ProfileResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID uint) (ProfileResponse, error) {
	p, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func applyUpdate(p *Profile, req UpdateProfileRequest) {
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.Skills != nil {
		p.Skills = orEmpty(*req.Skills)
	}
	if req.WorkExperience != nil {
		p.WorkExperience = orEmpty(*req.WorkExperience)
	}
	if req.Education != nil {
		p.Education = orEmpty(*req.Education)
	}
	if req.Certifications != nil {
		p.Certifications = orEmpty(*req.Certifications)
	}
	if req.Languages != nil {
		p.Languages = orEmpty(*req.Languages)
	}
	if req.SocialLinks != nil {
		links := *req.SocialLinks
		if links == nil {
			links = SocialLinks{}
		}
		p.SocialLinks = datatypes.NewJSONType(links)
	}
	if req.NotificationPrefs != nil {
		p.NotificationPrefs = datatypes.NewJSONType(*req.NotificationPrefs)
	}
}

func (s *service) Update(ctx context.Context, id uint, req UpdateProfileRequest) (ProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return ProfileResponse{}, apperror.Internal(tx.Error)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	applyUpdate(p, req)
	fields := apperror.FieldErrors{}
	validateProfile(p, fields)
	if err := fields.Err(); err != nil {
		return ProfileResponse{}, err
	}
	p.UpdatedAt = s.clock.Now()

	if err := qtx.Update(ctx, p); err != nil {
		log.Error("failed to update profile", zap.Uint("id_perfil", id), zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return ProfileResponse{}, apperror.Internal(err)
	}

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id uint) (relation.Report, error) {
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
		contextutil.GetLogger(ctx, s.logger).Error("failed to delete profile", zap.Uint("id_perfil", id), zap.Error(err))
		return relation.Report{}, apperror.Internal(err)
	}

	if err := tx.Commit().Error; err != nil {
		return relation.Report{}, apperror.Internal(err)
	}
	return report, nil
}

func mapToResponse(p Profile) ProfileResponse {
	links := p.SocialLinks.Data()
	if links == nil {
		links = SocialLinks{}
	}
	resp := ProfileResponse{
		ID:                p.ID,
		EmployeeID:        p.EmployeeID,
		Bio:               p.Bio,
		Skills:            orEmpty(p.Skills),
		WorkExperience:    orEmpty(p.WorkExperience),
		Education:         orEmpty(p.Education),
		Certifications:    orEmpty(p.Certifications),
		Languages:         orEmpty(p.Languages),
		SocialLinks:       links,
		NotificationPrefs: p.NotificationPrefs.Data(),
		UpdatedAt:         p.UpdatedAt,
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FullName()
	}
	return resp
}
