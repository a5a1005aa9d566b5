// Package notify crea avisos para usuarios y gestiona su lectura en bloque.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/ports"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/pkg/sanitize"
)

// Message aviso a emitir.
type Message struct {
	Recipient string
	Text      string
	Type      string
	Link      string
}

// Notifier casos de uso de notificaciones.
type Notifier struct {
	repos    ports.Repos
	tx       ports.TxRunner
	validate *validation.Validator
}

// NewNotifier construye el notifier.
func NewNotifier(repos ports.Repos, tx ports.TxRunner, validate *validation.Validator) *Notifier {
	return &Notifier{repos: repos, tx: tx, validate: validate}
}

// Emit crea una notificación no leída dentro de la transacción en curso.
func Emit(ctx context.Context, r ports.Repos, m Message) (*entity.Notification, error) {
	number, err := r.Counters.Next(ctx, entity.CollectionNotifications)
	if err != nil {
		return nil, fmt.Errorf("número de notificación: %w", err)
	}
	if m.Type == "" {
		m.Type = entity.NotificationGeneric
	}
	n := &entity.Notification{
		ID:        uuid.New().String(),
		Number:    number,
		Recipient: m.Recipient,
		Message:   m.Text,
		Type:      m.Type,
		Link:      m.Link,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.Notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Notify envía un aviso a otro usuario (POST /notifications). El destinatario debe existir.
func (nt *Notifier) Notify(ctx context.Context, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	in.Message = sanitize.Text(in.Message)
	in.Type = sanitize.Text(in.Type)
	in.Link = sanitize.Text(in.Link)
	if err := nt.validate.Struct(in); err != nil {
		return nil, err
	}
	var out *entity.Notification
	err := nt.tx.Run(ctx, func(r ports.Repos) error {
		user, err := r.Users.GetByUsername(ctx, in.Recipient)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NewValidationError("El destinatario no existe")
		}
		out, err = Emit(ctx, r, Message{
			Recipient: user.Username,
			Text:      in.Message,
			Type:      in.Type,
			Link:      in.Link,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toNotificationResponse(out), nil
}

// List devuelve las notificaciones del usuario, más recientes primero.
// unreadOnly limita a la bandeja de no leídas.
func (nt *Notifier) List(ctx context.Context, actor entity.Identity, unreadOnly bool) ([]dto.NotificationResponse, error) {
	list, err := nt.repos.Notifications.ListByRecipient(ctx, actor.Username, unreadOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, *toNotificationResponse(n))
	}
	return out, nil
}

// MarkAllRead marca como leídas todas las notificaciones del usuario.
// Repetirlo no cambia nada y devuelve 0.
func (nt *Notifier) MarkAllRead(ctx context.Context, actor entity.Identity) (int64, error) {
	return nt.repos.Notifications.MarkAllRead(ctx, actor.Username)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Number:    n.Number,
		Recipient: n.Recipient,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		Link:      n.Link,
		CreatedAt: n.CreatedAt,
	}
}
