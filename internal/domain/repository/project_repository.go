package repository

import (
	"context"

	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

// ProjectRepository puerto de persistencia para Project, acotado por dueño.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	// GetForOwner devuelve (nil, nil) si no existe o pertenece a otro usuario.
	GetForOwner(ctx context.Context, id, ownerID string) (*entity.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Project, error)
	// Update y Delete devuelven domain.ErrNotFound si ninguna fila coincide con (id, dueño).
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id, ownerID string) error
}
