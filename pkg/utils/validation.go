package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "wajib diisi"
	case "email":
		return "format email tidak valid"
	case "min":
		return fmt.Sprintf("minimal %s", err.Param())
	case "max":
		return fmt.Sprintf("maksimal %s", err.Param())
	case "gt":
		return fmt.Sprintf("harus lebih dari %s", err.Param())
	case "lte":
		return fmt.Sprintf("maksimal %s", err.Param())
	case "eqfield":
		return fmt.Sprintf("harus sama dengan %s", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("harus salah satu dari: %s", options)
	case "uuid":
		return "harus berupa UUID"
	default:
		return fmt.Sprintf("%s tidak valid", err.Field())
	}
}

// FormatValidationErrors joins the map into one line, ordered by field name.
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
