package session

import (
	"errors"
	"strings"

	sessionerrors "go-workforce/internal/session/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sessionerrors.ErrSessionNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_sesiones_token":
			return sessionerrors.ErrTokenTaken
		case pgErr.Code == "23503":
			return sessionerrors.ErrUserMissing
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed: sesiones.token_sesion") {
		return sessionerrors.ErrTokenTaken
	}

	return err
}
