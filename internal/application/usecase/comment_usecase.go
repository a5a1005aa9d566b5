package usecase

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

// CommentUseCase comentarios sobre tareas visibles (propias o asignadas).
type CommentUseCase struct {
	repos    ports.Repos
	tx       ports.TxRunner
	validate *validation.Validator
}

// NewCommentUseCase construye el caso de uso.
func NewCommentUseCase(repos ports.Repos, tx ports.TxRunner, validate *validation.Validator) *CommentUseCase {
	return &CommentUseCase{repos: repos, tx: tx, validate: validate}
}

// Create agrega un comentario. Los comentarios no se editan ni se borran.
func (uc *CommentUseCase) Create(ctx context.Context, actor entity.Identity, in dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	in.Content = sanitize.Text(in.Content)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	var comment *entity.Comment
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := visibleTask(ctx, r, actor, in.TaskID); err != nil {
			return err
		}
		number, err := r.Counters.Next(ctx, entity.CollectionComments)
		if err != nil {
			return fmt.Errorf("número de comentario: %w", err)
		}
		comment = &entity.Comment{
			ID:        uuid.New().String(),
			Number:    number,
			TaskID:    in.TaskID,
			UserID:    actor.UserID,
			Username:  actor.Username,
			Content:   in.Content,
			CreatedAt: time.Now().UTC(),
		}
		return r.Comments.Create(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return toCommentResponse(comment), nil
}

// ListByTask comentarios de una tarea visible, en orden cronológico.
func (uc *CommentUseCase) ListByTask(ctx context.Context, actor entity.Identity, taskID string) ([]dto.CommentResponse, error) {
	if err := visibleTask(ctx, uc.repos, actor, taskID); err != nil {
		return nil, err
	}
	list, err := uc.repos.Comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCommentResponse(c))
	}
	return out, nil
}

// visibleTask: ErrNotFound si la tarea no existe o el actor no es dueño ni asignado.
func visibleTask(ctx context.Context, r ports.Repos, actor entity.Identity, taskID string) error {
	task, err := r.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil || !task.VisibleTo(actor) {
		return domain.ErrNotFound
	}
	return nil
}

func toCommentResponse(c *entity.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        c.ID,
		Number:    c.Number,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		Username:  c.Username,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
