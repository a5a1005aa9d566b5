package dto

import "time"

// ProjectRequest entrada de creación y actualización de proyecto.
type ProjectRequest struct {
	Name        string `json:"name" validate:"required,max=200" label:"El nombre"`
	Description string `json:"description" validate:"max=5000" label:"La descripción"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Number      int64     `json:"number"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
