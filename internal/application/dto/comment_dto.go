package dto

import "time"

// CreateCommentRequest entrada de POST /comments.
type CreateCommentRequest struct {
	TaskID  string `json:"taskId" validate:"required" label:"La tarea"`
	Content string `json:"content" validate:"required,max=5000" label:"El comentario"`
}

// CommentResponse salida de un comentario.
type CommentResponse struct {
	ID        string    `json:"id"`
	Number    int64     `json:"number"`
	TaskID    string    `json:"taskId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
