package employeeerrors

import (
	"go-workforce/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.NotFound("Employee")

	ErrEmailTaken = apperror.ValidationField(
		"email",
		"An employee with this email already exists",
	)
	ErrDocumentTaken = apperror.ValidationField(
		"numero_documento",
		"An employee with this document number already exists",
	)
	ErrDepartmentMissing = apperror.ValidationField(
		"id_departamento",
		"Department does not exist",
	)
	ErrRoleMissing = apperror.ValidationField(
		"id_rol",
		"Role does not exist",
	)
	ErrRoleOutsideDepartment = apperror.ValidationField(
		"id_rol",
		"Role does not belong to the selected department",
	)
	ErrDepartureBeforeHire = apperror.ValidationField(
		"fecha_salida",
		"Fecha Salida cannot be earlier than fecha_ingreso",
	)
	ErrEmptySearch = apperror.InvalidRequest("Search query q is required")
)
