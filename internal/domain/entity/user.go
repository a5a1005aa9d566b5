package entity

import "time"

// Roles válidos para User. El rol es informativo; la autorización usa Permisos.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una cuenta del sistema.
type User struct {
	ID           string
	Number       int64
	Username     string // único, sensible a mayúsculas
	PasswordHash string // bcrypt, nunca se expone
	Role         string
	Permisos     bool
	DisplayName  string
	PhotoURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity devuelve la identidad con la que el usuario actúa.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username, Role: u.Role, Permisos: u.Permisos}
}

// ValidRole informa si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
