package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de persistencia para tareas.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, number, title, description, status, priority, project_id, assigned_to,
	due_date, estimated_hours, actual_hours, owner_id, created_at, updated_at`

// Create persiste una nueva tarea.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Number, t.Title, t.Description, string(t.Status), string(t.Priority), t.ProjectID,
		nullString(t.AssignedTo), t.DueDate, t.EstimatedHours, t.ActualHours, t.OwnerID,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea sin filtrar por dueño.
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

// GetForOwner obtiene una tarea solo si pertenece a ownerID.
func (r *TaskRepo) GetForOwner(ctx context.Context, id, ownerID string) (*entity.Task, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
}

// ListByOwner lista las tareas de un usuario por número.
func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Task, error) {
	rows, err := r.q.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 ORDER BY number`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update reemplaza los campos mutables; id, número, dueño y created_at no cambian.
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	if !validID(t.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE tasks SET title = $3, description = $4, status = $5, priority = $6, project_id = $7,
			assigned_to = $8, due_date = $9, estimated_hours = $10, actual_hours = $11, updated_at = $12
		WHERE id = $1 AND owner_id = $2`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.OwnerID, t.Title, t.Description, string(t.Status), string(t.Priority), t.ProjectID,
		nullString(t.AssignedTo), t.DueDate, t.EstimatedHours, t.ActualHours, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una tarea del dueño.
func (r *TaskRepo) Delete(ctx context.Context, id, ownerID string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearProject desvincula las tareas del dueño que apuntan al proyecto.
func (r *TaskRepo) ClearProject(ctx context.Context, projectID, ownerID string) error {
	if !validID(projectID) {
		return nil
	}
	_, err := r.q.Exec(ctx, `UPDATE tasks SET project_id = NULL WHERE project_id = $1 AND owner_id = $2`, projectID, ownerID)
	if err != nil {
		return fmt.Errorf("clear task project: %w", err)
	}
	return nil
}

func (r *TaskRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Task, error) {
	t, err := scanTask(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	var status, priority string
	var assignedTo *string
	if err := row.Scan(&t.ID, &t.Number, &t.Title, &t.Description, &status, &priority, &t.ProjectID,
		&assignedTo, &t.DueDate, &t.EstimatedHours, &t.ActualHours, &t.OwnerID,
		&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = entity.TaskStatus(status)
	t.Priority = entity.TaskPriority(priority)
	t.AssignedTo = derefString(assignedTo)
	return &t, nil
}
