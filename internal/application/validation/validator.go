// Package validation envuelve go-playground/validator y traduce los errores a
// mensajes legibles en español, todos juntos (no solo el primero).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Validator valida DTOs usando las etiquetas `validate`, `label` y `msg`.
// msg reemplaza el mensaje generado para cualquier regla del campo.
type Validator struct {
	v *validator.Validate
}

// New registra las reglas propias del dominio (fecha, estado, prioridad, usuario).
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// El nombre del campo en los mensajes sale de la etiqueta label.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
		return f.Name
	})

	// decimal.Decimal se compara como número en gte/lte.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		_, err := entity.ParseDueDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("estado", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseStatus(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("prioridad", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParsePriority(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("usuario", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Messages valida s y devuelve un mensaje por regla incumplida, en orden de campo.
func (val *Validator) Messages(s any) []string {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	msgs := make([]string, 0, len(verrs))
	seen := map[string]bool{}
	for _, fe := range verrs {
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if custom := f.Tag.Get("msg"); custom != "" {
				if !seen[custom] {
					seen[custom] = true
					msgs = append(msgs, custom)
				}
				continue
			}
		}
		msgs = append(msgs, message(fe))
	}
	return msgs
}

// Struct es Messages envuelto en *domain.ValidationError (nil si es válido).
func (val *Validator) Struct(s any) error {
	return domain.NewValidationError(val.Messages(s)...)
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", field)
	case "max":
		if isText {
			return fmt.Sprintf("%s no puede exceder %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s no puede ser mayor que %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s no puede ser mayor que %s", field, fe.Param())
	case "min":
		if isText {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s no puede ser menor que %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s no puede ser menor que %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "fecha":
		return fmt.Sprintf("%s debe ser una fecha válida (AAAA-MM-DD) con año entre %d y %d",
			field, entity.MinDueYear, entity.MaxDueYear)
	case "estado":
		return fmt.Sprintf("%s debe ser uno de: %s", field, joinStatuses())
	case "prioridad":
		return fmt.Sprintf("%s debe ser una de: %s", field, joinPriorities())
	case "usuario":
		return fmt.Sprintf("%s solo admite letras, números, punto, guion y guion bajo", field)
	}
	return fmt.Sprintf("%s no es válido", field)
}

func joinStatuses() string {
	out := make([]string, len(entity.TaskStatuses))
	for i, s := range entity.TaskStatuses {
		out[i] = string(s)
	}
	return strings.Join(out, ", ")
}

func joinPriorities() string {
	out := make([]string, len(entity.TaskPriorities))
	for i, p := range entity.TaskPriorities {
		out[i] = string(p)
	}
	return strings.Join(out, ", ")
}
