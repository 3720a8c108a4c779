package user

import (
	"errors"
	"strings"

	usererrors "go-workforce/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_usuarios_username":
			return usererrors.ErrUsernameTaken
		case pgErr.Code == "23503":
			return usererrors.ErrEmployeeMissing
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed: usuarios.username") {
		return usererrors.ErrUsernameTaken
	}

	return err
}
