package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo ledger de auditoría: solo INSERT y SELECT.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador del historial.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

const historyColumns = `id, number, task_id, user_id, username, action, field, old_value, new_value, created_at`

// Append agrega una entrada inmutable.
func (r *HistoryRepo) Append(ctx context.Context, e *entity.History) error {
	query := `INSERT INTO history (` + historyColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Number, e.TaskID, e.UserID, e.Username, string(e.Action), e.Field, e.OldValue, e.NewValue, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListByTask entradas de una tarea en orden cronológico; actorID vacío = todas.
func (r *HistoryRepo) ListByTask(ctx context.Context, taskID, actorID string) ([]*entity.History, error) {
	if !validID(taskID) {
		return nil, nil
	}
	query := `
		SELECT ` + historyColumns + ` FROM history
		WHERE task_id = $1 AND ($2 = '' OR user_id::text = $2)
		ORDER BY number`
	rows, err := r.q.Query(ctx, query, taskID, actorID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return collectHistory(rows)
}

// ListRecent últimas limit entradas, de la más reciente a la más antigua.
func (r *HistoryRepo) ListRecent(ctx context.Context, actorID string, limit int) ([]*entity.History, error) {
	query := `
		SELECT ` + historyColumns + ` FROM history
		WHERE ($1 = '' OR user_id::text = $1)
		ORDER BY number DESC LIMIT $2`
	rows, err := r.q.Query(ctx, query, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent history: %w", err)
	}
	return collectHistory(rows)
}

func collectHistory(rows pgx.Rows) ([]*entity.History, error) {
	defer rows.Close()
	var list []*entity.History
	for rows.Next() {
		var e entity.History
		var action string
		if err := rows.Scan(&e.ID, &e.Number, &e.TaskID, &e.UserID, &e.Username, &action,
			&e.Field, &e.OldValue, &e.NewValue, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Action = entity.HistoryAction(action)
		list = append(list, &e)
	}
	return list, rows.Err()
}
