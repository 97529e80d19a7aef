package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"coursekit/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Request DTOs carry gin "binding" tags; honor the same rules when a
	// struct is validated outside of request binding (CLI, query parsing).
	validate.SetTagName("binding")

	// Report field names by their JSON tag so error messages line up with
	// what the client actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct validates a request DTO and folds violations into a single
// validation AppError.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return errors.NewValidationError("Validation failed")
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fieldErrorMessage(fieldError))
	}

	return errors.NewValidationError("Validation failed", strings.Join(messages, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
