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

// ProjectUseCase CRUD de proyectos acotado al dueño.
type ProjectUseCase struct {
	repos    ports.Repos
	tx       ports.TxRunner
	validate *validation.Validator
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repos ports.Repos, tx ports.TxRunner, validate *validation.Validator) *ProjectUseCase {
	return &ProjectUseCase{repos: repos, tx: tx, validate: validate}
}

// Create crea un proyecto del usuario actuante.
func (uc *ProjectUseCase) Create(ctx context.Context, actor entity.Identity, in dto.ProjectRequest) (*dto.ProjectResponse, error) {
	in.Name = sanitize.Text(in.Name)
	in.Description = sanitize.Text(in.Description)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	var project *entity.Project
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		number, err := r.Counters.Next(ctx, entity.CollectionProjects)
		if err != nil {
			return fmt.Errorf("número de proyecto: %w", err)
		}
		now := time.Now().UTC()
		project = &entity.Project{
			ID:          uuid.New().String(),
			Number:      number,
			Name:        in.Name,
			Description: in.Description,
			OwnerID:     actor.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return r.Projects.Create(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// Get obtiene un proyecto propio.
func (uc *ProjectUseCase) Get(ctx context.Context, actor entity.Identity, id string) (*dto.ProjectResponse, error) {
	project, err := uc.repos.Projects.GetForOwner(ctx, id, actor.UserID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	return toProjectResponse(project), nil
}

// List lista los proyectos propios.
func (uc *ProjectUseCase) List(ctx context.Context, actor entity.Identity) ([]dto.ProjectResponse, error) {
	list, err := uc.repos.Projects.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProjectResponse(p))
	}
	return out, nil
}

// Update reemplaza nombre y descripción de un proyecto propio.
func (uc *ProjectUseCase) Update(ctx context.Context, actor entity.Identity, id string, in dto.ProjectRequest) (*dto.ProjectResponse, error) {
	in.Name = sanitize.Text(in.Name)
	in.Description = sanitize.Text(in.Description)
	var project *entity.Project
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		project, err = r.Projects.GetForOwner(ctx, id, actor.UserID)
		if err != nil {
			return err
		}
		if project == nil {
			return domain.ErrNotFound
		}
		if err := uc.validate.Struct(in); err != nil {
			return err
		}
		project.Name = in.Name
		project.Description = in.Description
		project.UpdatedAt = time.Now().UTC()
		return r.Projects.Update(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return toProjectResponse(project), nil
}

// Delete elimina un proyecto propio; sus tareas quedan sin proyecto.
func (uc *ProjectUseCase) Delete(ctx context.Context, actor entity.Identity, id string) error {
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		if err := r.Tasks.ClearProject(ctx, id, actor.UserID); err != nil {
			return err
		}
		return r.Projects.Delete(ctx, id, actor.UserID)
	})
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:          p.ID,
		Number:      p.Number,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
