package dto

import "time"

// SetupRequest crea el primer administrador (solo con la colección de usuarios vacía).
type SetupRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50,usuario" label:"El usuario"`
	Password    string `json:"password" validate:"required,min=6,max=72" label:"La contraseña"`
	DisplayName string `json:"displayName" validate:"max=100" label:"El nombre visible"`
}

// CreateUserRequest alta de usuario por un administrador.
// Permisos nil significa "según el rol".
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50,usuario" label:"El usuario"`
	Password    string `json:"password" validate:"required,min=6,max=72" label:"La contraseña"`
	Role        string `json:"role" validate:"omitempty,oneof=admin user" label:"El rol"`
	Permisos    *bool  `json:"permisos"`
	DisplayName string `json:"displayName" validate:"max=100" label:"El nombre visible"`
}

// ResetPasswordRequest cambio de contraseña de otro usuario (admin).
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72" label:"La contraseña"`
}

// ChangePasswordRequest cambio de la contraseña propia.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" label:"La contraseña actual"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72" label:"La nueva contraseña"`
}

// UpdateProfileRequest campos de texto del perfil; la foto llega aparte (multipart).
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" form:"displayName" validate:"max=100" label:"El nombre visible"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Number      int64     `json:"number"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Permisos    bool      `json:"permisos"`
	DisplayName string    `json:"displayName,omitempty"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required" label:"El usuario"`
	Password string `json:"password" validate:"required" label:"La contraseña"`
}

// SessionUser datos del usuario que acompañan al token.
type SessionUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Permisos bool   `json:"permisos"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
