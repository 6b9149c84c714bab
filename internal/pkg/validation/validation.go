package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// message builds a readable error message for a single failed rule
func message(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The field '%s' is required.", field)
	case "email":
		return fmt.Sprintf("The field '%s' must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The field '%s' must be at least %s characters long.", field, e.Param())
	case "max":
		return fmt.Sprintf("The field '%s' must be no longer than %s characters.", field, e.Param())
	case "oneof":
		return fmt.Sprintf("The field '%s' must be one of %s.", field, e.Param())
	default:
		return fmt.Sprintf("The field '%s' is invalid: %s.", field, e.Tag())
	}
}

// Struct validates a request DTO and returns a map of JSON field names to
// error messages, or nil when the struct is valid.
func Struct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{"body": "Invalid request body"}
	}

	fields := make(map[string]string, len(validationErrs))
	structType := reflect.TypeOf(s)
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	for _, e := range validationErrs {
		name := e.StructField()
		if field, ok := structType.FieldByName(e.StructField()); ok {
			if tag := strings.Split(field.Tag.Get("json"), ",")[0]; tag != "" && tag != "-" {
				name = tag
			}
		}
		fields[name] = message(name, e)
	}

	return fields
}
