package sessionerrors

import (
	"go-workforce/internal/shared/apperror"
)

var (
	ErrSessionNotFound = apperror.NotFound("Session")

	ErrUserMissing = apperror.ValidationField(
		"id_usuario",
		"User does not exist",
	)

	ErrTokenTaken = apperror.ValidationField(
		"token_sesion",
		"Session token is already in use",
	)

	ErrExpiryBeforeStart = apperror.ValidationField(
		"fecha_expiracion",
		"Fecha Expiracion must be after Fecha Inicio",
	)
)
