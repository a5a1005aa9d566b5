package dto

import "time"

// CreateHistoryRequest entrada de POST /history (registro manual sobre una tarea propia).
type CreateHistoryRequest struct {
	TaskID   string `json:"taskId" validate:"required" label:"La tarea"`
	Action   string `json:"action" validate:"required,oneof=CREATED STATUS_CHANGED TITLE_CHANGED DELETED" label:"La acción"`
	Field    string `json:"field" validate:"max=100" label:"El campo"`
	OldValue string `json:"oldValue" validate:"max=5000" label:"El valor anterior"`
	NewValue string `json:"newValue" validate:"max=5000" label:"El valor nuevo"`
}

// HistoryResponse salida de una entrada del historial.
type HistoryResponse struct {
	ID        string    `json:"id"`
	Number    int64     `json:"number"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Field     string    `json:"field"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	CreatedAt time.Time `json:"createdAt"`
}
