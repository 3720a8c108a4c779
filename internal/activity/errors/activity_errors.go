package activityerrors

import (
	"go-workforce/internal/shared/apperror"
)

var (
	ErrActivityNotFound = apperror.NotFound("Activity")

	ErrUserMissing = apperror.ValidationField(
		"id_usuario",
		"User does not exist",
	)
)
