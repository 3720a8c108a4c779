package role

import (
	"errors"
	"strings"

	roleerrors "go-workforce/internal/role/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return roleerrors.ErrRoleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_roles_departamento_nombre":
			return roleerrors.ErrRoleNameTaken
		case pgErr.Code == "23503":
			return roleerrors.ErrDepartmentMissing
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique constraint") && strings.Contains(errMsg, "roles.nombre") {
		return roleerrors.ErrRoleNameTaken
	}

	return err
}
