package systemlogerrors

import (
	"go-workforce/internal/shared/apperror"
)

var (
	ErrLogNotFound = apperror.NotFound("Log entry")

	ErrUserMissing = apperror.ValidationField(
		"id_usuario",
		"User does not exist",
	)
)
