package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/tasks"
	"github.com/jhoicas/Tareas-api/internal/application/usecase"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/domain"
)

func TestComment_DuenoYAsignadoPuedenComentar(t *testing.T) {
	store := seededStore(t)
	v := validation.New()
	lifecycle := tasks.NewLifecycleUseCase(store.Repos(), store, v)
	comments := usecase.NewCommentUseCase(store.Repos(), store, v)
	ctx := context.Background()

	task, err := lifecycle.Create(ctx, bob, dto.TaskRequest{Title: "Revisar", AssignedTo: "alice"})
	require.NoError(t, err)

	_, err = comments.Create(ctx, bob, dto.CreateCommentRequest{TaskID: task.ID, Content: "¿Listo?"})
	require.NoError(t, err)
	c, err := comments.Create(ctx, alice, dto.CreateCommentRequest{TaskID: task.ID, Content: "  <i>Casi</i> "})
	require.NoError(t, err)
	assert.Equal(t, "&lt;i&gt;Casi&lt;/i&gt;", c.Content)
	assert.Equal(t, "alice", c.Username)
	assert.Equal(t, int64(2), c.Number)

	list, err := comments.ListByTask(ctx, alice, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bob", list[0].Username)
}

func TestComment_TareaNoVisibleEsNotFound(t *testing.T) {
	store := seededStore(t)
	v := validation.New()
	lifecycle := tasks.NewLifecycleUseCase(store.Repos(), store, v)
	comments := usecase.NewCommentUseCase(store.Repos(), store, v)
	ctx := context.Background()

	task, err := lifecycle.Create(ctx, bob, dto.TaskRequest{Title: "Privada"})
	require.NoError(t, err)

	_, err = comments.Create(ctx, carol, dto.CreateCommentRequest{TaskID: task.ID, Content: "hola"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = comments.ListByTask(ctx, carol, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = comments.Create(ctx, bob, dto.CreateCommentRequest{TaskID: "no-existe", Content: "hola"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComment_ContenidoRequerido(t *testing.T) {
	store := seededStore(t)
	comments := usecase.NewCommentUseCase(store.Repos(), store, validation.New())

	_, err := comments.Create(context.Background(), bob, dto.CreateCommentRequest{TaskID: "t", Content: "   "})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"El comentario es requerido"}, verr.Messages)
}
