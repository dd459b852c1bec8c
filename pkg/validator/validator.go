// Package validator valida los DTO de entrada según sus etiquetas `validate`.
// Los mensajes usan el nombre JSON del campo.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct valida s y devuelve un error legible con el primer campo inválido.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("validación: %w", err)
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err
	}
	f := fields[0]
	name := f.Namespace()
	if _, rest, ok := strings.Cut(name, "."); ok {
		name = rest
	}
	switch f.Tag() {
	case "required":
		return fmt.Errorf("el campo '%s' es requerido", name)
	case "email":
		return fmt.Errorf("el campo '%s' debe ser un email válido", name)
	case "min":
		return fmt.Errorf("el campo '%s' debe tener al menos %s", name, f.Param())
	case "max":
		return fmt.Errorf("el campo '%s' admite como máximo %s", name, f.Param())
	case "oneof":
		return fmt.Errorf("el campo '%s' debe ser uno de: %s", name, f.Param())
	default:
		return fmt.Errorf("el campo '%s' no cumple la regla '%s'", name, f.Tag())
	}
}
