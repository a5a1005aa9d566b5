package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tareas-api/internal/application/auth"
	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tareas-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Repos(), store, validation.New(),
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}, bcrypt.MinCost)
	return uc, store
}

func bootstrap(t *testing.T, uc *auth.AuthUseCase) entity.Identity {
	t.Helper()
	admin, err := uc.Bootstrap(context.Background(), dto.SetupRequest{Username: "root", Password: "secreto1"})
	require.NoError(t, err)
	return entity.Identity{UserID: admin.ID, Username: admin.Username, Role: admin.Role, Permisos: admin.Permisos}
}

func TestBootstrap_SoloUnaVez(t *testing.T) {
	uc, _ := newAuth(t)
	admin := bootstrap(t, uc)
	assert.True(t, admin.Permisos)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	_, err := uc.Bootstrap(context.Background(), dto.SetupRequest{Username: "otro", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	created, err := uc.EnsureAdmin(context.Background(), "otro", "secreto1")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestLogin_TokenConIdentidad(t *testing.T) {
	uc, _ := newAuth(t)
	bootstrap(t, uc)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "root", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, dto.SessionUser{Username: "root", Role: "admin", Permisos: true}, out.User)

	sub, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "root", sub.Username)
	assert.True(t, sub.Permisos)
}

func TestLogin_ErrorGenerico(t *testing.T) {
	uc, _ := newAuth(t)
	bootstrap(t, uc)
	ctx := context.Background()

	_, errWrong := uc.Login(ctx, dto.LoginRequest{Username: "root", Password: "incorrecta"})
	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Username: "fantasma", Password: "secreto1"})
	assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error(), "no distingue usuario inexistente")
}

func TestRegisterUser_SoloAdmin(t *testing.T) {
	uc, _ := newAuth(t)
	admin := bootstrap(t, uc)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, admin, dto.CreateUserRequest{Username: "alice", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.False(t, u.Permisos)
	assert.Equal(t, int64(2), u.Number)

	alice := entity.Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
	_, err = uc.RegisterUser(ctx, alice, dto.CreateUserRequest{Username: "mallory", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.RegisterUser(ctx, admin, dto.CreateUserRequest{Username: "alice", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterUser_PermisosIndependientesDelRol(t *testing.T) {
	uc, _ := newAuth(t)
	admin := bootstrap(t, uc)
	yes := true

	u, err := uc.RegisterUser(context.Background(), admin, dto.CreateUserRequest{
		Username: "jefa", Password: "secreto1", Role: entity.RoleUser, Permisos: &yes,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.True(t, u.Permisos)

	// Un rol admin sin permisos no puede administrar.
	no := false
	v, err := uc.RegisterUser(context.Background(), admin, dto.CreateUserRequest{
		Username: "figura", Password: "secreto1", Role: entity.RoleAdmin, Permisos: &no,
	})
	require.NoError(t, err)
	figura := entity.Identity{UserID: v.ID, Username: v.Username, Role: v.Role, Permisos: v.Permisos}
	_, err = uc.RegisterUser(context.Background(), figura, dto.CreateUserRequest{Username: "x12", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResetPassword(t *testing.T) {
	uc, _ := newAuth(t)
	admin := bootstrap(t, uc)
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, admin, dto.CreateUserRequest{Username: "alice", Password: "secreto1"})
	require.NoError(t, err)

	alice := entity.Identity{UserID: u.ID, Username: "alice"}
	assert.ErrorIs(t, uc.ResetPassword(ctx, alice, "root", dto.ResetPasswordRequest{Password: "hackeada"}), domain.ErrForbidden)
	assert.ErrorIs(t, uc.ResetPassword(ctx, admin, "nadie", dto.ResetPasswordRequest{Password: "nueva123"}), domain.ErrNotFound)

	require.NoError(t, uc.ResetPassword(ctx, admin, "alice", dto.ResetPasswordRequest{Password: "nueva123"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "nueva123"})
	assert.NoError(t, err)
}

func TestChangePassword_VerificaActual(t *testing.T) {
	uc, _ := newAuth(t)
	admin := bootstrap(t, uc)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, admin, dto.ChangePasswordRequest{CurrentPassword: "mala", NewPassword: "otra123"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"La contraseña actual no es correcta"}, verr.Messages)

	require.NoError(t, uc.ChangePassword(ctx, admin, dto.ChangePasswordRequest{CurrentPassword: "secreto1", NewPassword: "otra123"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "root", Password: "otra123"})
	assert.NoError(t, err)
}

func TestBootstrap_Validacion(t *testing.T) {
	uc, store := newAuth(t)
	_, err := uc.Bootstrap(context.Background(), dto.SetupRequest{Username: "a b", Password: "123"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 2)

	count, err := store.Repos().Users.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
