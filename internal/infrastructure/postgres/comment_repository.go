package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo comentarios de tareas (solo inserción y lectura).
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador de persistencia para comentarios.
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

// Create persiste un comentario.
func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	query := `
		INSERT INTO comments (id, number, task_id, user_id, username, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Number, c.TaskID, c.UserID, c.Username, c.Content, c.CreatedAt); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// ListByTask lista los comentarios de una tarea en orden de creación.
func (r *CommentRepo) ListByTask(ctx context.Context, taskID string) ([]*entity.Comment, error) {
	if !validID(taskID) {
		return nil, nil
	}
	query := `
		SELECT id, number, task_id, user_id, username, content, created_at
		FROM comments WHERE task_id = $1 ORDER BY number`
	rows, err := r.q.Query(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.Number, &c.TaskID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
