// Package tasks orquesta el ciclo de vida de una tarea: valida, persiste, registra
// el historial y notifica al asignado, todo dentro de una sola transacción.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Tareas-api/internal/application/audit"
	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/notify"
	"github.com/jhoicas/Tareas-api/internal/application/ports"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/pkg/sanitize"
)

// LifecycleUseCase crea, actualiza, borra y consulta tareas del usuario actuante.
type LifecycleUseCase struct {
	repos    ports.Repos
	tx       ports.TxRunner
	validate *validation.Validator
}

// NewLifecycleUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
func NewLifecycleUseCase(repos ports.Repos, tx ports.TxRunner, validate *validation.Validator) *LifecycleUseCase {
	return &LifecycleUseCase{repos: repos, tx: tx, validate: validate}
}

// Create valida, numera y persiste la tarea; registra CREATED y avisa al asignado si lo hay.
func (uc *LifecycleUseCase) Create(ctx context.Context, actor entity.Identity, in dto.TaskRequest) (*dto.TaskResponse, error) {
	normalize(&in)
	msgs := uc.validate.Messages(in)

	var task *entity.Task
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		fields, err := uc.checkInput(ctx, r, actor, in, msgs)
		if err != nil {
			return err
		}
		number, err := r.Counters.Next(ctx, entity.CollectionTasks)
		if err != nil {
			return fmt.Errorf("número de tarea: %w", err)
		}
		now := time.Now().UTC()
		task = &entity.Task{
			ID:        uuid.New().String(),
			Number:    number,
			OwnerID:   actor.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		fields.apply(task)
		if err := r.Tasks.Create(ctx, task); err != nil {
			return err
		}
		if _, err := audit.Record(ctx, r, actor, audit.Entry{
			TaskID:   task.ID,
			Action:   entity.ActionCreated,
			Field:    "title",
			NewValue: task.Title,
		}); err != nil {
			return err
		}
		if task.AssignedTo == "" {
			return nil
		}
		_, err = notify.Emit(ctx, r, notify.Message{
			Recipient: task.AssignedTo,
			Text:      "Nueva tarea asignada: " + task.Title,
			Type:      entity.NotificationTaskAssigned,
			Link:      taskLink(task.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task, time.Now()), nil
}

// Update reemplaza todos los campos mutables de una tarea propia.
// Cada cambio de estado o de título deja una entrada en el historial; si hay asignado
// se le envía exactamente una notificación, cambie o no.
func (uc *LifecycleUseCase) Update(ctx context.Context, actor entity.Identity, id string, in dto.TaskRequest) (*dto.TaskResponse, error) {
	normalize(&in)
	msgs := uc.validate.Messages(in)

	var next *entity.Task
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		prev, err := r.Tasks.GetForOwner(ctx, id, actor.UserID)
		if err != nil {
			return err
		}
		if prev == nil {
			return domain.ErrNotFound
		}
		fields, err := uc.checkInput(ctx, r, actor, in, msgs)
		if err != nil {
			return err
		}
		copied := *prev
		next = &copied
		fields.apply(next)
		next.UpdatedAt = time.Now().UTC()
		if err := r.Tasks.Update(ctx, next); err != nil {
			return err
		}

		var changes []audit.Entry
		if prev.Status != next.Status {
			changes = append(changes, audit.Entry{
				TaskID: next.ID, Action: entity.ActionStatusChanged, Field: "status",
				OldValue: string(prev.Status), NewValue: string(next.Status),
			})
		}
		if prev.Title != next.Title {
			changes = append(changes, audit.Entry{
				TaskID: next.ID, Action: entity.ActionTitleChanged, Field: "title",
				OldValue: prev.Title, NewValue: next.Title,
			})
		}
		for _, e := range changes {
			if _, err := audit.Record(ctx, r, actor, e); err != nil {
				return err
			}
		}

		if next.AssignedTo == "" {
			return nil
		}
		kind := entity.NotificationTaskUpdated
		if next.AssignedTo != prev.AssignedTo {
			kind = entity.NotificationTaskAssigned
		}
		_, err = notify.Emit(ctx, r, notify.Message{
			Recipient: next.AssignedTo,
			Text:      "Tarea actualizada: " + next.Title,
			Type:      kind,
			Link:      taskLink(next.ID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toTaskResponse(next, time.Now()), nil
}

// Delete registra DELETED con el título vigente y luego elimina la tarea.
func (uc *LifecycleUseCase) Delete(ctx context.Context, actor entity.Identity, id string) error {
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		task, err := r.Tasks.GetForOwner(ctx, id, actor.UserID)
		if err != nil {
			return err
		}
		if task == nil {
			return domain.ErrNotFound
		}
		if _, err := audit.Record(ctx, r, actor, audit.Entry{
			TaskID:   task.ID,
			Action:   entity.ActionDeleted,
			Field:    "title",
			OldValue: task.Title,
		}); err != nil {
			return err
		}
		return r.Tasks.Delete(ctx, task.ID, actor.UserID)
	})
}

// Get obtiene una tarea propia por ID.
func (uc *LifecycleUseCase) Get(ctx context.Context, actor entity.Identity, id string) (*dto.TaskResponse, error) {
	task, err := uc.repos.Tasks.GetForOwner(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	return toTaskResponse(task, time.Now()), nil
}

// List lista las tareas propias aplicando los filtros. q busca en título y descripción
// sin distinguir mayúsculas.
func (uc *LifecycleUseCase) List(ctx context.Context, actor entity.Identity, f dto.TaskFilter) ([]dto.TaskResponse, error) {
	list, err := uc.repos.Tasks.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	q := fold.String(sanitize.Text(f.Query))
	now := time.Now()
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		if f.ProjectID != "" && (t.ProjectID == nil || *t.ProjectID != f.ProjectID) {
			continue
		}
		if q != "" && !strings.Contains(fold.String(t.Title), q) && !strings.Contains(fold.String(t.Description), q) {
			continue
		}
		out = append(out, *toTaskResponse(t, now))
	}
	return out, nil
}

// taskFields valores ya validados y saneados, listos para copiar a la entidad.
type taskFields struct {
	title, description string
	status             entity.TaskStatus
	priority           entity.TaskPriority
	projectID          *string
	assignedTo         string
	dueDate            *time.Time
	in                 dto.TaskRequest
}

func (f taskFields) apply(t *entity.Task) {
	t.Title = f.title
	t.Description = f.description
	t.Status = f.status
	t.Priority = f.priority
	t.ProjectID = f.projectID
	t.AssignedTo = f.assignedTo
	t.DueDate = f.dueDate
	t.EstimatedHours = f.in.EstimatedHours
	t.ActualHours = f.in.ActualHours
}

// checkInput completa la validación con las referencias (proyecto propio, asignado existente)
// y devuelve todos los mensajes juntos.
func (uc *LifecycleUseCase) checkInput(ctx context.Context, r ports.Repos, actor entity.Identity, in dto.TaskRequest, msgs []string) (taskFields, error) {
	if in.ProjectID != nil {
		project, err := r.Projects.GetForOwner(ctx, *in.ProjectID, actor.UserID)
		if err != nil {
			return taskFields{}, err
		}
		if project == nil {
			msgs = append(msgs, "El proyecto no existe")
		}
	}
	if in.AssignedTo != "" {
		user, err := r.Users.GetByUsername(ctx, in.AssignedTo)
		if err != nil {
			return taskFields{}, err
		}
		if user == nil {
			msgs = append(msgs, "El usuario asignado no existe")
		}
	}
	if err := domain.NewValidationError(msgs...); err != nil {
		return taskFields{}, err
	}

	// Los Parse no fallan aquí: el validador ya aplicó las mismas reglas.
	status, _ := entity.ParseStatus(in.Status)
	priority, _ := entity.ParsePriority(in.Priority)
	due, _ := entity.ParseDueDate(in.DueDate)
	return taskFields{
		title:       in.Title,
		description: in.Description,
		status:      status,
		priority:    priority,
		projectID:   in.ProjectID,
		assignedTo:  in.AssignedTo,
		dueDate:     due,
		in:          in,
	}, nil
}

// normalize deja la entrada tal como se guardará, así los límites de longitud y de horas
// se validan sobre el valor persistido.
func normalize(in *dto.TaskRequest) {
	in.Title = sanitize.Text(in.Title)
	in.Description = sanitize.Text(in.Description)
	in.EstimatedHours = in.EstimatedHours.Round(entity.HoursScale)
	in.ActualHours = in.ActualHours.Round(entity.HoursScale)
	in.Status = strings.TrimSpace(in.Status)
	in.Priority = strings.TrimSpace(in.Priority)
	in.AssignedTo = strings.TrimSpace(in.AssignedTo)
	in.DueDate = strings.TrimSpace(in.DueDate)
	if in.ProjectID != nil && strings.TrimSpace(*in.ProjectID) == "" {
		in.ProjectID = nil
	}
}

func taskLink(id string) string {
	return "/tasks/" + id
}

func toTaskResponse(t *entity.Task, now time.Time) *dto.TaskResponse {
	out := &dto.TaskResponse{
		ID:             t.ID,
		Number:         t.Number,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		ProjectID:      t.ProjectID,
		AssignedTo:     t.AssignedTo,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		Overdue:        t.IsOverdue(now),
		OwnerID:        t.OwnerID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.DueDate != nil {
		out.DueDate = t.DueDate.Format(entity.DueDateLayout)
	}
	return out
}
