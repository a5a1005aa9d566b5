package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Tareas-api/internal/application/ports"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repositorios funcionan con ambos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewRepos construye el juego completo de repositorios sobre q (pool o tx).
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		Users:         NewUserRepository(q),
		Projects:      NewProjectRepository(q),
		Tasks:         NewTaskRepository(q),
		Comments:      NewCommentRepository(q),
		History:       NewHistoryRepository(q),
		Notifications: NewNotificationRepository(q),
		Counters:      NewCounterRepository(q),
	}
}
