package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, number, recipient, message, type, read, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, n.ID, n.Number, n.Recipient, n.Message, n.Type, n.Read, nullString(n.Link), n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByRecipient de la más reciente a la más antigua.
func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipient string, unreadOnly bool) ([]*entity.Notification, error) {
	query := `
		SELECT id, number, recipient, message, type, read, link, created_at
		FROM notifications
		WHERE recipient = $1 AND (NOT $2 OR read = FALSE)
		ORDER BY number DESC`
	rows, err := r.q.Query(ctx, query, recipient, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		var link *string
		if err := rows.Scan(&n.ID, &n.Number, &n.Recipient, &n.Message, &n.Type, &n.Read, &link, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Link = derefString(link)
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkAllRead marca como leídas las pendientes del destinatario.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipient string) (int64, error) {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE recipient = $1 AND read = FALSE`, recipient)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
