package validation_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/domain"
)

func validTask() dto.TaskRequest {
	return dto.TaskRequest{Title: "Ship release"}
}

func TestTask_Valida(t *testing.T) {
	assert.Empty(t, validation.New().Messages(validTask()))
}

func TestTask_TituloEnElLimite(t *testing.T) {
	v := validation.New()
	req := validTask()

	req.Title = strings.Repeat("a", 200)
	assert.Empty(t, v.Messages(req))

	req.Title = strings.Repeat("a", 201)
	msgs := v.Messages(req)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "200")
	assert.Equal(t, "El título no puede exceder 200 caracteres", msgs[0])
}

func TestTask_TituloCuentaRunas(t *testing.T) {
	req := validTask()
	req.Title = strings.Repeat("ñ", 200)
	assert.Empty(t, validation.New().Messages(req))
}

func TestTask_TituloRequerido(t *testing.T) {
	req := validTask()
	req.Title = ""
	assert.Equal(t, []string{"El título es requerido"}, validation.New().Messages(req))
}

func TestTask_FechaLimites(t *testing.T) {
	v := validation.New()
	for _, ok := range []string{"1890-01-01", "2100-12-31", "2025-02-28", "2030-06-15T10:00:00Z", ""} {
		req := validTask()
		req.DueDate = ok
		assert.Empty(t, v.Messages(req), "fecha %q", ok)
	}
	for _, bad := range []string{"1889-12-31", "2101-01-01", "2025-02-30", "mañana"} {
		req := validTask()
		req.DueDate = bad
		msgs := v.Messages(req)
		require.Len(t, msgs, 1, "fecha %q", bad)
		assert.Contains(t, msgs[0], "1890")
	}
}

func TestTask_HorasLimites(t *testing.T) {
	v := validation.New()
	for _, ok := range []int64{0, 1, 10000} {
		req := validTask()
		req.EstimatedHours = decimal.NewFromInt(ok)
		assert.Empty(t, v.Messages(req), "horas %d", ok)
	}
	for _, bad := range []string{"10001", "-1", "10000.5"} {
		req := validTask()
		req.EstimatedHours = decimal.RequireFromString(bad)
		assert.Equal(t, []string{"Las horas estimadas deben estar entre 0 y 10000"}, v.Messages(req), "horas %s", bad)
	}
}

func TestTask_HorasRealesLimites(t *testing.T) {
	v := validation.New()
	for _, ok := range []string{"0", "0.5", "10000"} {
		req := validTask()
		req.ActualHours = decimal.RequireFromString(ok)
		assert.Empty(t, v.Messages(req), "horas %s", ok)
	}
	for _, bad := range []string{"10001", "-1", "99999999.99"} {
		req := validTask()
		req.ActualHours = decimal.RequireFromString(bad)
		assert.Equal(t, []string{"Las horas reales deben estar entre 0 y 10000"}, v.Messages(req), "horas %s", bad)
	}
}

func TestTask_EstadoYPrioridadCerrados(t *testing.T) {
	v := validation.New()
	req := validTask()
	req.Status = "Completada"
	req.Priority = "Crítica"
	assert.Empty(t, v.Messages(req))

	req.Status = "completada"
	req.Priority = "Urgente"
	msgs := v.Messages(req)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "Pendiente")
	assert.Contains(t, msgs[1], "Baja")
}

func TestTask_ReportaTodosLosErroresJuntos(t *testing.T) {
	req := dto.TaskRequest{
		Title:          strings.Repeat("x", 201),
		DueDate:        "2101-01-01",
		EstimatedHours: decimal.NewFromInt(10001),
	}
	msgs := validation.New().Messages(req)
	assert.Len(t, msgs, 3)
}

func TestStruct_DevuelveValidationError(t *testing.T) {
	v := validation.New()
	assert.NoError(t, v.Struct(validTask()))

	err := v.Struct(dto.ProjectRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"El nombre es requerido"}, verr.Messages)
}

func TestUsuario_Formato(t *testing.T) {
	v := validation.New()
	ok := dto.CreateUserRequest{Username: "ana.lopez_1", Password: "secreto"}
	assert.Empty(t, v.Messages(ok))

	bad := dto.CreateUserRequest{Username: "ana lopez", Password: "secreto", Role: "root"}
	msgs := v.Messages(bad)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "El usuario")
	assert.Equal(t, "El rol debe ser uno de: admin, user", msgs[1])
}
