package entity

import "time"

// Comment es un comentario sobre una tarea. Solo se agregan, nunca se editan.
type Comment struct {
	ID        string
	Number    int64
	TaskID    string
	UserID    string
	Username  string
	Content   string
	CreatedAt time.Time
}
