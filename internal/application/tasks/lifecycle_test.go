package tasks_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/tasks"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/internal/infrastructure/memory"
)

var (
	bob   = entity.Identity{UserID: "u-bob", Username: "bob", Role: entity.RoleUser}
	carol = entity.Identity{UserID: "u-carol", Username: "carol", Role: entity.RoleUser}
)

type fixture struct {
	uc    *tasks.LifecycleUseCase
	store *memory.Store
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	for i, name := range []string{"alice", "bob", "carol", "dave"} {
		require.NoError(t, store.Repos().Users.Create(ctx, &entity.User{ID: "u-" + name, Number: int64(i + 1), Username: name}))
	}
	return &fixture{uc: tasks.NewLifecycleUseCase(store.Repos(), store, validation.New()), store: store, ctx: ctx}
}

func (f *fixture) history(t *testing.T, taskID string) []*entity.History {
	t.Helper()
	list, err := f.store.Repos().History.ListByTask(f.ctx, taskID, "")
	require.NoError(t, err)
	return list
}

func (f *fixture) notifications(t *testing.T, username string) []*entity.Notification {
	t.Helper()
	list, err := f.store.Repos().Notifications.ListByRecipient(f.ctx, username, false)
	require.NoError(t, err)
	return list
}

func (f *fixture) create(t *testing.T, actor entity.Identity, in dto.TaskRequest) *dto.TaskResponse {
	t.Helper()
	out, err := f.uc.Create(f.ctx, actor, in)
	require.NoError(t, err)
	return out
}

func TestCreate_EscenarioShipRelease(t *testing.T) {
	f := newFixture(t)
	out := f.create(t, bob, dto.TaskRequest{Title: "Ship release", AssignedTo: "alice"})

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, int64(1), out.Number)
	assert.Equal(t, "Pendiente", out.Status)
	assert.Equal(t, "Media", out.Priority)
	assert.Equal(t, bob.UserID, out.OwnerID)

	h := f.history(t, out.ID)
	require.Len(t, h, 1)
	assert.Equal(t, entity.ActionCreated, h[0].Action)
	assert.Equal(t, "title", h[0].Field)
	assert.Equal(t, "", h[0].OldValue)
	assert.Equal(t, "Ship release", h[0].NewValue)
	assert.Equal(t, "bob", h[0].Username)

	n := f.notifications(t, "alice")
	require.Len(t, n, 1)
	assert.False(t, n[0].Read)
	assert.Contains(t, n[0].Message, "Ship release")
	assert.Equal(t, entity.NotificationTaskAssigned, n[0].Type)
}

func TestCreate_SinAsignadoNoNotifica(t *testing.T) {
	f := newFixture(t)
	f.create(t, bob, dto.TaskRequest{Title: "Sola"})
	for _, u := range []string{"alice", "bob", "carol"} {
		assert.Empty(t, f.notifications(t, u))
	}
}

func TestUpdate_CambioDeEstadoUnaEntrada(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, bob, dto.TaskRequest{Title: "Ship release", AssignedTo: "alice"})

	updated, err := f.uc.Update(f.ctx, bob, created.ID, dto.TaskRequest{Title: "Ship release", Status: "Completada", AssignedTo: "alice"})
	require.NoError(t, err)
	assert.Equal(t, "Completada", updated.Status)
	assert.Equal(t, created.Number, updated.Number, "el número no cambia")
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	h := f.history(t, created.ID)
	require.Len(t, h, 2)
	assert.Equal(t, entity.ActionStatusChanged, h[1].Action)
	assert.Equal(t, "Pendiente", h[1].OldValue)
	assert.Equal(t, "Completada", h[1].NewValue)
	for _, e := range h {
		assert.NotEqual(t, entity.ActionTitleChanged, e.Action)
	}
}

func TestUpdate_TituloYEstadoDosEntradas(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, bob, dto.TaskRequest{Title: "Viejo"})

	_, err := f.uc.Update(f.ctx, bob, created.ID, dto.TaskRequest{Title: "Nuevo", Status: "En Progreso"})
	require.NoError(t, err)

	h := f.history(t, created.ID)
	require.Len(t, h, 3)
	assert.Equal(t, entity.ActionStatusChanged, h[1].Action)
	assert.Equal(t, entity.ActionTitleChanged, h[2].Action)
	assert.Equal(t, "Viejo", h[2].OldValue)
	assert.Equal(t, "Nuevo", h[2].NewValue)
}

func TestUpdate_SinCambiosNoAudita(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, bob, dto.TaskRequest{Title: "Igual"})

	_, err := f.uc.Update(f.ctx, bob, created.ID, dto.TaskRequest{Title: "Igual", Description: "otra"})
	require.NoError(t, err)
	assert.Len(t, f.history(t, created.ID), 1)
}

func TestUpdate_UnaNotificacionPorActualizacion(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, bob, dto.TaskRequest{Title: "T", AssignedTo: "alice"})

	_, err := f.uc.Update(f.ctx, bob, created.ID, dto.TaskRequest{Title: "T", AssignedTo: "alice"})
	require.NoError(t, err)
	n := f.notifications(t, "alice")
	require.Len(t, n, 2, "una de la creación y una de la actualización")
	assert.Equal(t, entity.NotificationTaskUpdated, n[0].Type)

	_, err = f.uc.Update(f.ctx, bob, created.ID, dto.TaskRequest{Title: "T", AssignedTo: "carol"})
	require.NoError(t, err)
	c := f.notifications(t, "carol")
	require.Len(t, c, 1)
	assert.Equal(t, entity.NotificationTaskAssigned, c[0].Type)
	assert.Len(t, f.notifications(t, "alice"), 2)
}

func TestUpdate_ReemplazaCamposMutables(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, bob, dto.TaskRequest{
		Title: "T", AssignedTo: "alice", DueDate: "2030-01-01", EstimatedHours: decimal.NewFromInt(5),
	})

	updated, err := f.uc.Update(f.ctx, bob, created.ID, dto.TaskRequest{Title: "T"})
	require.NoError(t, err)
	assert.Empty(t, updated.AssignedTo)
	assert.Empty(t, updated.DueDate)
	assert.True(t, updated.EstimatedHours.IsZero())
	assert.Len(t, f.notifications(t, "alice"), 1, "sin asignado no hay aviso")
}

func TestDelete_RegistraTituloYBorra(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, bob, dto.TaskRequest{Title: "Efímera"})

	require.NoError(t, f.uc.Delete(f.ctx, bob, created.ID))

	h := f.history(t, created.ID)
	require.Len(t, h, 2)
	assert.Equal(t, entity.ActionDeleted, h[1].Action)
	assert.Equal(t, "Efímera", h[1].OldValue)
	assert.Equal(t, "", h[1].NewValue)

	_, err := f.uc.Get(f.ctx, bob, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(f.ctx, bob, created.ID), domain.ErrNotFound)
}

func TestOwnership_AjenaEsNotFound(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, bob, dto.TaskRequest{Title: "De bob"})

	_, err := f.uc.Get(f.ctx, carol, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.uc.Update(f.ctx, carol, created.ID, dto.TaskRequest{Title: "Robada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(f.ctx, carol, created.ID), domain.ErrNotFound)

	_, err = f.uc.Get(f.ctx, carol, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound, "misma señal que una tarea inexistente")

	list, err := f.uc.List(f.ctx, carol, dto.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Len(t, f.history(t, created.ID), 1)
}

func TestValidacion_SinEfectosSecundarios(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.ctx, bob, dto.TaskRequest{
		Title:          strings.Repeat("x", 201),
		AssignedTo:     "alice",
		DueDate:        "1889-12-31",
		EstimatedHours: decimal.NewFromInt(10001),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 3)
	assert.Contains(t, verr.Messages[0], "200")
	assert.Empty(t, f.notifications(t, "alice"))

	created := f.create(t, bob, dto.TaskRequest{Title: "Válida", AssignedTo: "alice"})
	assert.Equal(t, int64(1), created.Number, "la creación rechazada no consume número")

	_, err = f.uc.Update(f.ctx, bob, created.ID, dto.TaskRequest{Title: "", Status: "Completada", AssignedTo: "alice"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, f.history(t, created.ID), 1)
	assert.Len(t, f.notifications(t, "alice"), 1)
}

func TestValidacion_LimitesAceptados(t *testing.T) {
	f := newFixture(t)
	cases := []dto.TaskRequest{
		{Title: strings.Repeat("a", 200), DueDate: "1890-01-01", EstimatedHours: decimal.Zero},
		{Title: strings.Repeat("b", 200), DueDate: "2100-12-31", EstimatedHours: decimal.NewFromInt(10000)},
	}
	for _, in := range cases {
		_, err := f.uc.Create(f.ctx, bob, in)
		assert.NoError(t, err)
	}
	for _, due := range []string{"2101-01-01", "1889-01-01"} {
		_, err := f.uc.Create(f.ctx, bob, dto.TaskRequest{Title: "x", DueDate: due})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "fecha %s", due)
	}
}

func TestValidacion_Referencias(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Repos().Projects.Create(f.ctx, &entity.Project{ID: "p-carol", OwnerID: carol.UserID, Name: "Ajeno"}))
	require.NoError(t, f.store.Repos().Projects.Create(f.ctx, &entity.Project{ID: "p-bob", OwnerID: bob.UserID, Name: "Propio"}))

	foreign := "p-carol"
	_, err := f.uc.Create(f.ctx, bob, dto.TaskRequest{Title: "x", ProjectID: &foreign, AssignedTo: "zoe"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"El proyecto no existe", "El usuario asignado no existe"}, verr.Messages)

	own := "p-bob"
	out, err := f.uc.Create(f.ctx, bob, dto.TaskRequest{Title: "x", ProjectID: &own})
	require.NoError(t, err)
	require.NotNil(t, out.ProjectID)
	assert.Equal(t, "p-bob", *out.ProjectID)
}

func TestCreate_SaneaTexto(t *testing.T) {
	f := newFixture(t)
	out := f.create(t, bob, dto.TaskRequest{Title: "  <script>x</script>  ", Description: "a & b"})
	assert.Equal(t, "&lt;script&gt;x&lt;/script&gt;", out.Title)
	assert.Equal(t, "a &amp; b", out.Description)
}

func TestValidacion_TituloSaneadoSuperaLimite(t *testing.T) {
	f := newFixture(t)
	// 41 caracteres crudos, 205 una vez escapados.
	_, err := f.uc.Create(f.ctx, bob, dto.TaskRequest{Title: strings.Repeat("&", 41)})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Messages, 1)
	assert.Contains(t, verr.Messages[0], "200")

	list, err := f.uc.List(f.ctx, bob, dto.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.uc.Create(f.ctx, bob, dto.TaskRequest{Title: strings.Repeat("&", 40)})
	assert.NoError(t, err, "40 caracteres escapados ocupan justo 200")
}

func TestUpdate_IdaYVueltaNoDuplicaEscape(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, bob, dto.TaskRequest{Title: "Q&A release", Description: "<b>notas</b>", AssignedTo: "alice"})

	got, err := f.uc.Get(f.ctx, bob, created.ID)
	require.NoError(t, err)
	out, err := f.uc.Update(f.ctx, bob, created.ID, dto.TaskRequest{
		Title:       got.Title,
		Description: got.Description,
		Status:      got.Status,
		Priority:    got.Priority,
		AssignedTo:  got.AssignedTo,
	})
	require.NoError(t, err)
	assert.Equal(t, "Q&amp;A release", out.Title)
	assert.Equal(t, got.Description, out.Description)

	h := f.history(t, created.ID)
	require.Len(t, h, 1, "sin TITLE_CHANGED")
	assert.Equal(t, entity.ActionCreated, h[0].Action)
}

func TestCreate_RedondeaHorasADosDecimales(t *testing.T) {
	f := newFixture(t)
	out := f.create(t, bob, dto.TaskRequest{
		Title:          "Horas",
		EstimatedHours: decimal.RequireFromString("1.234"),
		ActualHours:    decimal.RequireFromString("2.345"),
	})
	assert.True(t, decimal.RequireFromString("1.23").Equal(out.EstimatedHours), "estimadas %s", out.EstimatedHours)
	assert.True(t, decimal.RequireFromString("2.35").Equal(out.ActualHours), "reales %s", out.ActualHours)

	_, err := f.uc.Create(f.ctx, bob, dto.TaskRequest{Title: "x", ActualHours: decimal.RequireFromString("10000.004")})
	assert.NoError(t, err, "redondea a 10000.00 antes de validar")
	_, err = f.uc.Create(f.ctx, bob, dto.TaskRequest{Title: "x", ActualHours: decimal.NewFromInt(100000000)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransaccion_FalloEnNotificacionRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn(memory.OpNotificationCreate, errors.New("notificaciones caídas"))

	_, err := f.uc.Create(f.ctx, bob, dto.TaskRequest{Title: "Atómica", AssignedTo: "alice"})
	require.Error(t, err)

	list, err := f.uc.List(f.ctx, bob, dto.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "la tarea no queda persistida")
	recent, err := f.store.Repos().History.ListRecent(f.ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, recent, "ni su historial")

	created := f.create(t, bob, dto.TaskRequest{Title: "Atómica", AssignedTo: "alice"})
	assert.Equal(t, int64(1), created.Number)
}

func TestTransaccion_FalloAlBorrarRevierteHistorial(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, bob, dto.TaskRequest{Title: "Persistente"})
	f.store.FailOn(memory.OpTaskDelete, errors.New("disco lleno"))

	require.Error(t, f.uc.Delete(f.ctx, bob, created.ID))
	_, err := f.uc.Get(f.ctx, bob, created.ID)
	assert.NoError(t, err, "la tarea sigue existiendo")
	assert.Len(t, f.history(t, created.ID), 1, "el DELETED se revierte con el borrado")
}

func TestCreate_NumerosUnicosConcurrentes(t *testing.T) {
	f := newFixture(t)
	const n = 50
	var wg sync.WaitGroup
	numbers := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.uc.Create(f.ctx, bob, dto.TaskRequest{Title: "concurrente"})
			if assert.NoError(t, err) {
				numbers <- out.Number
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := map[int64]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "número %d repetido", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
}

func TestCreate_NumerosCrecientes(t *testing.T) {
	f := newFixture(t)
	var last int64
	for i := 0; i < 5; i++ {
		out := f.create(t, bob, dto.TaskRequest{Title: "x"})
		assert.Greater(t, out.Number, last)
		last = out.Number
	}
}

func TestList_FiltrosYBusqueda(t *testing.T) {
	f := newFixture(t)
	f.create(t, bob, dto.TaskRequest{Title: "Ship release", Priority: "Alta"})
	f.create(t, bob, dto.TaskRequest{Title: "Revisar ÁRBOL", Status: "Completada"})
	f.create(t, bob, dto.TaskRequest{Title: "Otra", Description: "incluye SHIP en la descripción"})

	got, err := f.uc.List(f.ctx, bob, dto.TaskFilter{Query: "ship"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.uc.List(f.ctx, bob, dto.TaskFilter{Query: "árbol"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Completada", got[0].Status)

	got, err = f.uc.List(f.ctx, bob, dto.TaskFilter{Priority: "Alta"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ship release", got[0].Title)

	got, err = f.uc.List(f.ctx, bob, dto.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].Number, "ordenadas por número")
}
