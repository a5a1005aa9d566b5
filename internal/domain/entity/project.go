package entity

import "time"

// ProjectNameMaxLen longitud máxima del nombre de proyecto.
const ProjectNameMaxLen = 200

// Project agrupa tareas; solo su creador lo ve y lo modifica.
type Project struct {
	ID          string
	Number      int64
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
