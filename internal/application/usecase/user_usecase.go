package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Tareas-api/internal/application/auth"
	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/ports"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/pkg/sanitize"
)

// UserUseCase listado de usuarios y perfil propio.
type UserUseCase struct {
	repos    ports.Repos
	tx       ports.TxRunner
	photos   ports.PhotoStore
	validate *validation.Validator
}

// NewUserUseCase construye el caso de uso con el almacén de fotos.
func NewUserUseCase(repos ports.Repos, tx ports.TxRunner, photos ports.PhotoStore, validate *validation.Validator) *UserUseCase {
	return &UserUseCase{repos: repos, tx: tx, photos: photos, validate: validate}
}

// List devuelve todos los usuarios; cualquier identidad autenticada puede listarlos.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repos.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Profile devuelve el usuario actuante.
func (uc *UserUseCase) Profile(ctx context.Context, actor entity.Identity) (*dto.UserResponse, error) {
	user, err := uc.repos.Users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// UpdateProfile actualiza el nombre visible y, si llega, la foto. La foto anterior se borra.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, actor entity.Identity, in dto.UpdateProfileRequest, photo *ports.Photo) (*dto.UserResponse, error) {
	in.DisplayName = sanitize.Text(in.DisplayName)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	var newURL string
	if photo != nil {
		url, err := uc.photos.Save(ctx, *photo)
		if err != nil {
			return nil, err
		}
		newURL = url
	}

	var user *entity.User
	var oldURL string
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		var err error
		user, err = r.Users.GetByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		user.DisplayName = in.DisplayName
		if newURL != "" {
			oldURL = user.PhotoURL
			user.PhotoURL = newURL
		}
		user.UpdatedAt = time.Now().UTC()
		return r.Users.Update(ctx, user)
	})
	if err != nil {
		if newURL != "" {
			_ = uc.photos.Delete(ctx, newURL)
		}
		return nil, err
	}
	if oldURL != "" {
		_ = uc.photos.Delete(ctx, oldURL)
	}
	return auth.ToUserResponse(user), nil
}
