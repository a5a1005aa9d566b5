package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Límites de validación de Task.
const (
	TaskTitleMaxLen   = 200
	MinDueYear        = 1890
	MaxDueYear        = 2100
	MaxEstimatedHours = 10000
	MaxActualHours    = 10000
	HoursScale        = 2 // decimales guardados, igual que NUMERIC(10,2)
	DueDateLayout     = "2006-01-02"
)

// TaskStatus estado del flujo de trabajo de una tarea (enumeración cerrada).
type TaskStatus string

const (
	StatusPending    TaskStatus = "Pendiente"
	StatusInProgress TaskStatus = "En Progreso"
	StatusInReview   TaskStatus = "En Revisión"
	StatusCompleted  TaskStatus = "Completada"
)

// TaskStatuses en orden de flujo.
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusInReview, StatusCompleted}

// IsTerminal informa si la tarea cuenta como completada en estadísticas.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted
}

// ParseStatus valida un estado; vacío devuelve el estado por defecto.
func ParseStatus(s string) (TaskStatus, bool) {
	if s == "" {
		return StatusPending, true
	}
	for _, st := range TaskStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// TaskPriority prioridad de una tarea (enumeración cerrada).
type TaskPriority string

const (
	PriorityLow      TaskPriority = "Baja"
	PriorityMedium   TaskPriority = "Media"
	PriorityHigh     TaskPriority = "Alta"
	PriorityCritical TaskPriority = "Crítica"
)

// TaskPriorities de menor a mayor.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// IsHigh informa si la prioridad cuenta como "alta prioridad" en estadísticas.
func (p TaskPriority) IsHigh() bool {
	return p == PriorityHigh || p == PriorityCritical
}

// ParsePriority valida una prioridad; vacío devuelve la prioridad por defecto.
func ParsePriority(s string) (TaskPriority, bool) {
	if s == "" {
		return PriorityMedium, true
	}
	for _, p := range TaskPriorities {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// ParseDueDate interpreta una fecha de vencimiento (YYYY-MM-DD o RFC3339).
// Vacío significa "sin fecha" y devuelve nil.
func ParseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DueDateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("fecha inválida %q", s)
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	if t.Year() < MinDueYear || t.Year() > MaxDueYear {
		return nil, fmt.Errorf("año %d fuera de rango [%d, %d]", t.Year(), MinDueYear, MaxDueYear)
	}
	return &t, nil
}

// Task es la unidad de trabajo. Solo su creador (OwnerID) la ve y la modifica.
type Task struct {
	ID             string
	Number         int64
	Title          string
	Description    string
	Status         TaskStatus
	Priority       TaskPriority
	ProjectID      *string
	AssignedTo     string // username del asignado; vacío = sin asignar
	DueDate        *time.Time
	EstimatedHours decimal.Decimal
	ActualHours    decimal.Decimal
	OwnerID        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOverdue: tiene fecha anterior al día de now y no está terminada.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status.IsTerminal() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.DueDate.Before(today)
}

// VisibleTo: el dueño o el asignado.
func (t *Task) VisibleTo(id Identity) bool {
	return t.OwnerID == id.UserID || (t.AssignedTo != "" && t.AssignedTo == id.Username)
}
