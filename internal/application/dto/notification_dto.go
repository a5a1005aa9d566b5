package dto

import "time"

// CreateNotificationRequest entrada de POST /notifications.
type CreateNotificationRequest struct {
	Recipient string `json:"recipient" validate:"required,max=50,usuario" label:"El destinatario"`
	Message   string `json:"message" validate:"required,max=500" label:"El mensaje"`
	Type      string `json:"type" validate:"max=50" label:"El tipo"`
	Link      string `json:"link" validate:"max=500" label:"El enlace"`
}

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Number    int64     `json:"number"`
	Recipient string    `json:"recipient"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MarkAllReadResponse resultado de PATCH /notifications/read-all.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
