package repository

import (
	"context"

	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

// NotificationRepository puerto de persistencia para Notification.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByRecipient(ctx context.Context, recipient string, unreadOnly bool) ([]*entity.Notification, error)
	// MarkAllRead marca como leídas todas las notificaciones del destinatario; devuelve cuántas cambiaron.
	MarkAllRead(ctx context.Context, recipient string) (int64, error)
}
