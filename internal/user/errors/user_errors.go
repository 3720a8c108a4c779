package usererrors

import (
	"go-workforce/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.NotFound("User")

	ErrUsernameTaken = apperror.ValidationField(
		"username",
		"Username is already in use",
	)

	ErrEmployeeMissing = apperror.ValidationField(
		"id_empleado",
		"Employee does not exist",
	)

	// estado cannot be edited while the account is locked; use unlock.
	ErrUserLocked = apperror.ValidationField(
		"estado",
		"User is locked, unlock it before changing estado",
	)
)
