package employee

import (
	"errors"
	"strings"

	employeeerrors "go-workforce/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			switch pgErr.ConstraintName {
			case "uq_empleados_email":
				return employeeerrors.ErrEmailTaken
			case "uq_empleados_numero_documento":
				return employeeerrors.ErrDocumentTaken
			}
		case "23503":
			if strings.Contains(pgErr.ConstraintName, "rol") {
				return employeeerrors.ErrRoleMissing
			}
			return employeeerrors.ErrDepartmentMissing
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique constraint") {
		switch {
		case strings.Contains(errMsg, "empleados.email"):
			return employeeerrors.ErrEmailTaken
		case strings.Contains(errMsg, "empleados.numero_documento"):
			return employeeerrors.ErrDocumentTaken
		}
	}

	return err
}
