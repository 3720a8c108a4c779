package notificationerrors

import (
	"go-workforce/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.NotFound("Notification")
	ErrUserNotFound         = apperror.NotFound("User")

	ErrUserMissing = apperror.ValidationField(
		"id_usuario",
		"User does not exist",
	)

	ErrExpiryBeforeCreation = apperror.ValidationField(
		"fecha_expiracion",
		"Fecha Expiracion must be after Fecha Creacion",
	)
)
