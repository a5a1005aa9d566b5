package repository

import "context"

// CounterRepository asigna números de visualización por colección.
// Next es atómico: leer-incrementar-devolver en una sola operación.
type CounterRepository interface {
	Next(ctx context.Context, collection string) (int64, error)
}
