// Package validate turns struct tags into aggregated, client-facing field
// errors. Every field is checked eagerly; violations are collected into a
// single domain.ValidationError instead of failing on the first bad field.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mdesouza/encomendas/internal/domain"
)

// Validator wraps a configured go-playground validator instance.
// A single instance caches struct metadata and is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator that reports violations under the form field name
// rather than the Go struct field name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Struct validates s and converts any violations into a
// domain.ValidationError carrying one entry per offending field.
func (val *Validator) Struct(op string, s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only happens for invalid input types (nil, non-struct).
		return domain.WrapError(err, domain.EINTERNAL, op, "validação indisponível")
	}

	ve := &domain.ValidationError{Op: op}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, domain.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return ve
}

// messageFor maps a validator tag to a client-facing message.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "gte", "min":
		return "deve ser maior ou igual a " + fe.Param()
	default:
		return "valor inválido"
	}
}
