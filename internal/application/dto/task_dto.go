package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaskRequest entrada de creación y de actualización (reemplazo completo de campos mutables).
type TaskRequest struct {
	Title          string          `json:"title" validate:"required,max=200" label:"El título"`
	Description    string          `json:"description" validate:"max=5000" label:"La descripción"`
	Status         string          `json:"status" validate:"estado" label:"El estado"`
	Priority       string          `json:"priority" validate:"prioridad" label:"La prioridad"`
	ProjectID      *string         `json:"projectId"`
	AssignedTo     string          `json:"assignedTo" validate:"omitempty,max=50,usuario" label:"El asignado"`
	DueDate        string          `json:"dueDate" validate:"fecha" label:"La fecha de vencimiento" msg:"La fecha de vencimiento debe estar entre 1890 y 2100"`
	EstimatedHours decimal.Decimal `json:"estimatedHours" validate:"gte=0,lte=10000" label:"Las horas estimadas" msg:"Las horas estimadas deben estar entre 0 y 10000"`
	ActualHours    decimal.Decimal `json:"actualHours" validate:"gte=0,lte=10000" label:"Las horas reales" msg:"Las horas reales deben estar entre 0 y 10000"`
}

// TaskFilter filtros de GET /tasks.
type TaskFilter struct {
	Query     string `query:"q"`
	Status    string `query:"status"`
	Priority  string `query:"priority"`
	ProjectID string `query:"projectId"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID             string          `json:"id"`
	Number         int64           `json:"number"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Status         string          `json:"status"`
	Priority       string          `json:"priority"`
	ProjectID      *string         `json:"projectId"`
	AssignedTo     string          `json:"assignedTo"`
	DueDate        string          `json:"dueDate,omitempty"`
	EstimatedHours decimal.Decimal `json:"estimatedHours"`
	ActualHours    decimal.Decimal `json:"actualHours"`
	Overdue        bool            `json:"overdue"`
	OwnerID        string          `json:"ownerId"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// TaskStatsResponse contadores de GET /tasks/stats.
type TaskStatsResponse struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"highPriority"`
	Overdue      int `json:"overdue"`
}
