// Package audit mantiene el historial de cambios de las tareas (ledger append-only).
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/ports"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/pkg/sanitize"
)

// Entry datos de una entrada antes de numerarla.
type Entry struct {
	TaskID   string
	Action   entity.HistoryAction
	Field    string
	OldValue string
	NewValue string
}

// Recorder agrega y consulta entradas del historial. No existe operación de edición ni borrado.
type Recorder struct {
	repos    ports.Repos
	tx       ports.TxRunner
	validate *validation.Validator
}

// NewRecorder construye el recorder. repos se usa para lecturas fuera de transacción.
func NewRecorder(repos ports.Repos, tx ports.TxRunner, validate *validation.Validator) *Recorder {
	return &Recorder{repos: repos, tx: tx, validate: validate}
}

// Record numera y persiste una entrada usando los repos de la transacción en curso.
func Record(ctx context.Context, r ports.Repos, actor entity.Identity, e Entry) (*entity.History, error) {
	number, err := r.Counters.Next(ctx, entity.CollectionHistory)
	if err != nil {
		return nil, fmt.Errorf("número de historial: %w", err)
	}
	h := &entity.History{
		ID:        uuid.New().String(),
		Number:    number,
		TaskID:    e.TaskID,
		UserID:    actor.UserID,
		Username:  actor.Username,
		Action:    e.Action,
		Field:     e.Field,
		OldValue:  e.OldValue,
		NewValue:  e.NewValue,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.History.Append(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Append registra manualmente una entrada sobre una tarea propia (POST /history).
func (rc *Recorder) Append(ctx context.Context, actor entity.Identity, in dto.CreateHistoryRequest) (*dto.HistoryResponse, error) {
	in.Field = sanitize.Text(in.Field)
	in.OldValue = sanitize.Text(in.OldValue)
	in.NewValue = sanitize.Text(in.NewValue)
	if err := rc.validate.Struct(in); err != nil {
		return nil, err
	}
	var out *entity.History
	err := rc.tx.Run(ctx, func(r ports.Repos) error {
		task, err := r.Tasks.GetForOwner(ctx, in.TaskID, actor.UserID)
		if err != nil {
			return err
		}
		if task == nil {
			return domain.ErrNotFound
		}
		out, err = Record(ctx, r, actor, Entry{
			TaskID:   task.ID,
			Action:   entity.HistoryAction(in.Action),
			Field:    in.Field,
			OldValue: in.OldValue,
			NewValue: in.NewValue,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toHistoryResponse(out), nil
}

// ForTask historial de una tarea en orden cronológico.
// Un usuario sin permisos solo ve las entradas que él mismo generó.
func (rc *Recorder) ForTask(ctx context.Context, actor entity.Identity, taskID string) ([]dto.HistoryResponse, error) {
	list, err := rc.repos.History.ListByTask(ctx, taskID, scopeFor(actor))
	if err != nil {
		return nil, err
	}
	return toHistoryList(list), nil
}

// Recent feed global: las últimas 100 entradas, de la más reciente a la más antigua.
func (rc *Recorder) Recent(ctx context.Context, actor entity.Identity) ([]dto.HistoryResponse, error) {
	list, err := rc.repos.History.ListRecent(ctx, scopeFor(actor), entity.HistoryRecentLimit)
	if err != nil {
		return nil, err
	}
	return toHistoryList(list), nil
}

func scopeFor(actor entity.Identity) string {
	if actor.IsAdmin() {
		return ""
	}
	return actor.UserID
}

func toHistoryList(list []*entity.History) []dto.HistoryResponse {
	out := make([]dto.HistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, *toHistoryResponse(h))
	}
	return out
}

func toHistoryResponse(h *entity.History) *dto.HistoryResponse {
	return &dto.HistoryResponse{
		ID:        h.ID,
		Number:    h.Number,
		TaskID:    h.TaskID,
		UserID:    h.UserID,
		Username:  h.Username,
		Action:    string(h.Action),
		Field:     h.Field,
		OldValue:  h.OldValue,
		NewValue:  h.NewValue,
		CreatedAt: h.CreatedAt,
	}
}
