// Package validation runs form validation before anything is sent to the
// API and turns failures into per-field messages for inline display.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their form name so messages line up with inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	return v
}

// Errors maps a form field name to the message shown next to it
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the message for a field, or an empty string
func (e Errors) Get(field string) string {
	return e[field]
}

// Messages holds custom messages keyed by "field.tag" or by "field"
type Messages map[string]string

// Validate checks v against its `validate` tags. It returns nil or Errors.
func Validate(v any, messages Messages) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", v, err)
	}
	return FromValidator(fieldErrs, messages)
}

// FromValidator adapts validator failures to a field-to-message mapping.
// Only the first failure of each field is kept.
func FromValidator(fieldErrs validator.ValidationErrors, messages Messages) Errors {
	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			out[field] = msg
			continue
		}
		if msg, ok := messages[field]; ok {
			out[field] = msg
			continue
		}
		out[field] = defaultMessage(fe)
	}
	return out
}

// Is reports whether err carries field validation errors
func Is(err error) bool {
	var verrs Errors
	return errors.As(err, &verrs)
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "eqfield":
		return "Values do not match"
	case "numeric":
		return "Only digits are allowed"
	}
	return "Invalid value"
}
