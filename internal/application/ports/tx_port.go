package ports

import (
	"context"

	"github.com/jhoicas/Tareas-api/internal/domain/repository"
)

// Repos agrupa los repositorios de una unidad de trabajo (pool o transacción).
type Repos struct {
	Users         repository.UserRepository
	Projects      repository.ProjectRepository
	Tasks         repository.TaskRepository
	Comments      repository.CommentRepository
	History       repository.HistoryRepository
	Notifications repository.NotificationRepository
	Counters      repository.CounterRepository
}

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace Rollback y ninguna escritura queda persistida.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
