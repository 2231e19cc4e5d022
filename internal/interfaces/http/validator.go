package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/restaurante-api/internal/domain"
)

// Validator valida las etiquetas `validate` de los DTOs y reporta los campos con su nombre JSON.
type Validator struct {
	v *validator.Validate
}

// NewValidator construye el validador.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate devuelve un error que envuelve domain.ErrInvalidInput con un mensaje por campo, unidos por "; ".
func (val *Validator) Validate(i any) error {
	err := val.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "email":
		return field + " debe ser un email válido"
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s debe tener al menos %s elemento(s)", field, fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s debe ser al menos %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s excede el máximo (%s)", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}
