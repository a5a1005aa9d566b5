package dto

import "time"

// Tipos de reporte de GET /reports/:kind.
const (
	ReportTasks    = "tasks"
	ReportProjects = "projects"
	ReportUsers    = "users"
)

// ReportRow una fila etiqueta/cantidad.
type ReportRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ReportResponse reporte agregado sobre las tareas del usuario.
type ReportResponse struct {
	Kind        string      `json:"kind"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Rows        []ReportRow `json:"rows"`
}
