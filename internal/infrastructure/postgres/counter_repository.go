package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tareas-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo asigna números correlativos por colección con un upsert atómico.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el asignador de números.
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve el contador. El lock de fila del upsert serializa a los concurrentes.
func (r *CounterRepo) Next(ctx context.Context, collection string) (int64, error) {
	query := `
		INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(ctx, query, collection).Scan(&value); err != nil {
		return 0, fmt.Errorf("next counter %s: %w", collection, err)
	}
	return value, nil
}
