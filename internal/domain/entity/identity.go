package entity

// Identity es el usuario que actúa en una petición (extraído del bearer token).
// Se pasa explícitamente a cada caso de uso.
type Identity struct {
	UserID   string
	Username string
	Role     string
	Permisos bool
}

// IsAdmin decide la autorización administrativa: solo cuenta el flag Permisos, no el rol.
func (i Identity) IsAdmin() bool {
	return i.Permisos
}
