package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

// TaskReportData todo lo que necesita el PDF del reporte de tareas.
type TaskReportData struct {
	Username     string
	GeneratedAt  time.Time
	Stats        dto.TaskStatsResponse
	ByStatus     []dto.ReportRow
	Tasks        []*entity.Task
	ProjectNames map[string]string // id -> nombre
}

// TaskReportPDFGenerator genera la representación PDF del reporte.
type TaskReportPDFGenerator interface {
	GenerateTaskReportPDF(ctx context.Context, data TaskReportData) ([]byte, error)
}
