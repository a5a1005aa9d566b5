package entity

import "time"

// HistoryAction tipo de mutación registrada en el historial.
type HistoryAction string

const (
	ActionCreated       HistoryAction = "CREATED"
	ActionStatusChanged HistoryAction = "STATUS_CHANGED"
	ActionTitleChanged  HistoryAction = "TITLE_CHANGED"
	ActionDeleted       HistoryAction = "DELETED"
)

// Valid informa si la acción es una de las conocidas.
func (a HistoryAction) Valid() bool {
	switch a {
	case ActionCreated, ActionStatusChanged, ActionTitleChanged, ActionDeleted:
		return true
	}
	return false
}

// HistoryRecentLimit tamaño del feed global.
const HistoryRecentLimit = 100

// History es una entrada inmutable del historial de auditoría.
type History struct {
	ID        string
	Number    int64
	TaskID    string
	UserID    string
	Username  string
	Action    HistoryAction
	Field     string
	OldValue  string
	NewValue  string
	CreatedAt time.Time
}
