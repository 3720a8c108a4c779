package profile

import (
	"errors"
	"strings"

	profileerrors "go-workforce/internal/profile/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profileerrors.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_perfiles_empleado":
			return profileerrors.ErrProfileExists
		case pgErr.Code == "23503":
			return profileerrors.ErrEmployeeMissing
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed: perfiles_empleados.id_empleado") {
		return profileerrors.ErrProfileExists
	}

	return err
}
