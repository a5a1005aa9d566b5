package repository

import (
	"context"

	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

// CommentRepository solo permite agregar y listar.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	ListByTask(ctx context.Context, taskID string) ([]*entity.Comment, error)
}
