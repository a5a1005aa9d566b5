package repository

import (
	"context"

	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

// HistoryRepository es el ledger de auditoría: append-only, sin Update ni Delete.
// actorID vacío significa "todas las entradas".
type HistoryRepository interface {
	Append(ctx context.Context, entry *entity.History) error
	// ListByTask en orden cronológico.
	ListByTask(ctx context.Context, taskID, actorID string) ([]*entity.History, error)
	// ListRecent de más reciente a más antigua, como máximo limit entradas.
	ListRecent(ctx context.Context, actorID string, limit int) ([]*entity.History, error)
}
