package roleerrors

import (
	"go-workforce/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.NotFound("Role")

	ErrRoleNameTaken = apperror.ValidationField(
		"nombre",
		"A role with this name already exists in the department",
	)

	ErrDepartmentMissing = apperror.ValidationField(
		"id_departamento",
		"Department does not exist",
	)

	ErrRoleInUse = apperror.ValidationField(
		"id_departamento",
		"Role is assigned to employees and cannot move to another department",
	)
)
