package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// fecha_ingreso -> Fecha Ingreso
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.Spanish)
	return caser.String(s)
}

func RequiredField(field string) string {
	return formatFieldName(field) + " is required"
}

func InvalidField(field string) string {
	return formatFieldName(field) + " is invalid"
}

// MapValidationError turns a binding failure into a field-level validation
// error. Field names come from json tags (see Init).
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		fields := FieldErrors{}
		for _, e := range errs {
			field := e.Field()
			switch e.Tag() {
			case "required":
				fields.Add(field, RequiredField(field))
			case "email":
				fields.Add(field, "Enter a valid email address")
			case "oneof":
				fields.Add(field, formatFieldName(field)+" must be one of: "+strings.ReplaceAll(e.Param(), " ", ", "))
			case "max":
				fields.Add(field, formatFieldName(field)+" must be at most "+e.Param()+" characters")
			default:
				fields.Add(field, InvalidField(field))
			}
		}
		return fields.Err()
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return ValidationField(typeErr.Field, InvalidField(typeErr.Field))
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
