package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/ports"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/pkg/jwt"
	"github.com/jhoicas/Tareas-api/pkg/sanitize"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación y gestión de cuentas.
type AuthUseCase struct {
	repos      ports.Repos
	tx         ports.TxRunner
	validate   *validation.Validator
	jwtCfg     JWTConfig
	bcryptCost int
	dummyHash  []byte
}

// NewAuthUseCase construye el caso de uso de auth. bcryptCost fuera de rango usa bcrypt.DefaultCost.
func NewAuthUseCase(repos ports.Repos, tx ports.TxRunner, validate *validation.Validator, jwtCfg JWTConfig, bcryptCost int) *AuthUseCase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	// Hash de relleno: un usuario inexistente cuesta lo mismo que una contraseña incorrecta.
	dummy, _ := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	return &AuthUseCase{
		repos:      repos,
		tx:         tx,
		validate:   validate,
		jwtCfg:     jwtCfg,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Login verifica usuario/contraseña y emite un JWT con identidad, rol y permisos.
// Usuario inexistente y contraseña incorrecta devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.repos.Users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Permisos: user.Permisos,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.SessionUser{Username: user.Username, Role: user.Role, Permisos: user.Permisos},
	}, nil
}

// Bootstrap crea el primer administrador. Con usuarios ya registrados devuelve ErrConflict.
func (uc *AuthUseCase) Bootstrap(ctx context.Context, in dto.SetupRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	var user *entity.User
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		count, err := r.Users.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrConflict
		}
		user, err = uc.createUser(ctx, r, in.Username, in.Password, entity.RoleAdmin, true, in.DisplayName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// EnsureAdmin crea el admin inicial si no hay usuarios. Devuelve true si lo creó.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := uc.Bootstrap(ctx, dto.SetupRequest{Username: username, Password: password})
	if errors.Is(err, domain.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RegisterUser alta de usuario por un administrador. Sin permisos explícitos se derivan del rol.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, actor entity.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	in.Username = strings.TrimSpace(in.Username)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	permisos := role == entity.RoleAdmin
	if in.Permisos != nil {
		permisos = *in.Permisos
	}
	var user *entity.User
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		existing, err := r.Users.GetByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		user, err = uc.createUser(ctx, r, in.Username, in.Password, role, permisos, in.DisplayName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ResetPassword cambia la contraseña de otro usuario (solo administradores).
func (uc *AuthUseCase) ResetPassword(ctx context.Context, actor entity.Identity, username string, in dto.ResetPasswordRequest) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	if err := uc.validate.Struct(in); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		user, err := r.Users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		return uc.setPassword(ctx, r, user, in.Password)
	})
}

// ChangePassword cambia la contraseña propia verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, actor entity.Identity, in dto.ChangePasswordRequest) error {
	if err := uc.validate.Struct(in); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		user, err := r.Users.GetByID(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
			return domain.NewValidationError("La contraseña actual no es correcta")
		}
		return uc.setPassword(ctx, r, user, in.NewPassword)
	})
}

func (uc *AuthUseCase) createUser(ctx context.Context, r ports.Repos, username, password, role string, permisos bool, displayName string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	number, err := r.Counters.Next(ctx, entity.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("número de usuario: %w", err)
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Number:       number,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Permisos:     permisos,
		DisplayName:  sanitize.Text(displayName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *AuthUseCase) setPassword(ctx context.Context, r ports.Repos, user *entity.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()
	return r.Users.Update(ctx, user)
}

// ToUserResponse convierte la entidad en su salida pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Number:      u.Number,
		Username:    u.Username,
		Role:        u.Role,
		Permisos:    u.Permisos,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
