// Package validator adapts go-playground/validator to echo request validation.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"bulletin/internal/errors"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected field using its JSON name.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError lists every rejected field of a request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		if field.Param != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field.Field, field.Rule, field.Param))

			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", field.Field, field.Rule))
	}

	return strings.Join(parts, "; ")
}

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return &Validator{validate: validate}
}

func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "failed to validate request")
	}

	result := &ValidationError{Fields: make([]FieldError, 0, len(validationErrs))}
	for _, fieldErr := range validationErrs {
		result.Fields = append(result.Fields, FieldError{
			Field: fieldErr.Field(),
			Rule:  fieldErr.Tag(),
			Param: fieldErr.Param(),
		})
	}

	return result
}

func jsonFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}

	return field.Name
}
