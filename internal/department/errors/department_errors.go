package departmenterrors

import (
	"go-workforce/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.NotFound("Department")

	ErrDepartmentNameTaken = apperror.ValidationField(
		"nombre",
		"A department with this name already exists",
	)
)
