package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// nullString convierte "" en NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// derefString convierte NULL en "".
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// validID evita mandar a una columna UUID un texto que Postgres rechazaría con error de cast.
// Un id mal formado equivale a "no existe".
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
