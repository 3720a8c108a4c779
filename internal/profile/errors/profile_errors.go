package profileerrors

import (
	"go-workforce/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.NotFound("Profile")

	ErrEmployeeMissing = apperror.ValidationField(
		"id_empleado",
		"Employee does not exist",
	)

	// An employee has at most one profile.
	ErrProfileExists = apperror.ValidationField(
		"id_empleado",
		"This employee already has a profile",
	)
)
