package entity

import "time"

// Tipos de notificación.
const (
	NotificationTaskAssigned = "task_assigned"
	NotificationTaskUpdated  = "task_updated"
	NotificationGeneric      = "info"
)

// Notification aviso dirigido a un usuario. Solo se modifica con "marcar todas como leídas".
type Notification struct {
	ID        string
	Number    int64
	Recipient string // username destino
	Message   string
	Type      string
	Read      bool
	Link      string
	CreatedAt time.Time
}
