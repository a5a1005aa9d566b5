package repository

import (
	"context"

	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

// TaskRepository puerto de persistencia para Task, acotado por dueño.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	// GetByID sin filtro de dueño; el caso de uso decide la visibilidad.
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	// GetForOwner devuelve (nil, nil) si no existe o pertenece a otro usuario.
	GetForOwner(ctx context.Context, id, ownerID string) (*entity.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Task, error)
	// Update reemplaza los campos mutables; dueño, número y CreatedAt se conservan.
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id, ownerID string) error
	// ClearProject desvincula las tareas del dueño del proyecto borrado.
	ClearProject(ctx context.Context, projectID, ownerID string) error
}
