// Package seed loads the reference departments and roles a fresh
// installation starts with.
package seed

import (
	"context"
	"errors"
	"fmt"

	"go-workforce/internal/department"
	"go-workforce/internal/role"
	"go-workforce/internal/shared/clock"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type departmentSeed struct {
	Name        string
	Description string
}

type roleSeed struct {
	Department  string
	Name        string
	Description string
	AccessLevel string
	Permissions role.PermissionSet
}

var departments = []departmentSeed{
	{Name: "Administración", Description: "Gestión financiera, recursos humanos y jurídica"},
	{Name: "IT", Description: "Tecnología de la información y sistemas"},
	{Name: "Operaciones", Description: "Instalación, mantenimiento y monitoreo de proyectos"},
}

var roles = []roleSeed{
	{"Administración", "CEO - Gerente General", "Dirección estratégica y representación legal", role.AccessAdmin,
		role.PermissionSet{"dashboard": true, "usuarios": true, "reportes": true, "configuracion": true}},
	{"Administración", "Gerencia Jurídica", "Contratos y cumplimiento regulatorio", role.AccessAdvanced,
		role.PermissionSet{"dashboard": true, "contratos": true, "reportes": true}},
	{"Administración", "Recursos Humanos", "Gestión de personal y capacitación", role.AccessIntermediate,
		role.PermissionSet{"dashboard": true, "empleados": true, "capacitacion": true}},
	{"IT", "CISO", "Seguridad de la información y ciberseguridad", role.AccessAdmin,
		role.PermissionSet{"dashboard": true, "seguridad": true, "logs": true, "usuarios": true}},
	{"IT", "Desarrollador", "Desarrollo y mantenimiento de aplicaciones", role.AccessAdvanced,
		role.PermissionSet{"dashboard": true, "desarrollo": true, "logs": true}},
	{"IT", "Administrador de Sistemas", "Gestión de infraestructura tecnológica", role.AccessAdvanced,
		role.PermissionSet{"dashboard": true, "sistemas": true, "monitoreo": true}},
	{"Operaciones", "Ingeniero de Proyectos", "Diseño y supervisión técnica de proyectos", role.AccessAdvanced,
		role.PermissionSet{"dashboard": true, "proyectos": true, "reportes": true}},
	{"Operaciones", "Técnico de Campo", "Instalación y mantenimiento en campo", role.AccessBasic,
		role.PermissionSet{"dashboard": true, "mantenimiento": true}},
}

type Result struct {
	DepartmentsCreated int
	RolesCreated       int
}

// Run creates the missing reference rows in one transaction. Rows that
// already exist, matched by name, are left untouched.
func Run(ctx context.Context, db *gorm.DB, clk clock.Clock, logger *zap.Logger) (Result, error) {
	if clk == nil {
		clk = clock.System()
	}
	log := logger.Named("seed")
	var res Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := clk.Now().UTC()
		ids := make(map[string]uint, len(departments))

		for _, d := range departments {
			var dept department.Department
			err := tx.Where("nombre = ?", d.Name).First(&dept).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				dept = department.Department{
					Name:        d.Name,
					Description: d.Description,
					Status:      department.StatusActive,
					CreatedAt:   now,
				}
				if err := tx.Create(&dept).Error; err != nil {
					return fmt.Errorf("seed department %q: %w", d.Name, err)
				}
				res.DepartmentsCreated++
				log.Info("department created", zap.String("nombre", d.Name))
			case err != nil:
				return fmt.Errorf("seed department %q: %w", d.Name, err)
			}
			ids[d.Name] = dept.ID
		}

		for _, r := range roles {
			deptID := ids[r.Department]
			var existing int64
			if err := tx.Model(&role.Role{}).
				Where("nombre = ? AND id_departamento = ?", r.Name, deptID).
				Count(&existing).Error; err != nil {
				return fmt.Errorf("seed role %q: %w", r.Name, err)
			}
			if existing > 0 {
				continue
			}

			rl := role.Role{
				Name:         r.Name,
				DepartmentID: deptID,
				Description:  r.Description,
				AccessLevel:  r.AccessLevel,
				Permissions:  datatypes.NewJSONType(r.Permissions),
				Status:       role.StatusActive,
				CreatedAt:    now,
			}
			if err := tx.Omit("Department").Create(&rl).Error; err != nil {
				return fmt.Errorf("seed role %q: %w", r.Name, err)
			}
			res.RolesCreated++
			log.Info("role created", zap.String("nombre", r.Name), zap.String("departamento", r.Department))
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
