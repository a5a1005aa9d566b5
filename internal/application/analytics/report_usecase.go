// Package analytics contiene estadísticas y reportes sobre las tareas del usuario.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/ports"
	"github.com/jhoicas/Tareas-api/internal/domain"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

const (
	labelNoProject  = "Sin proyecto"
	labelUnassigned = "Sin asignar"
)

// ReportUseCase calcula estadísticas y reportes. Solo lectura.
type ReportUseCase struct {
	repos ports.Repos
	pdf   TaskReportPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repos ports.Repos, pdf TaskReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{repos: repos, pdf: pdf}
}

// Stats contadores sobre las tareas propias.
func (uc *ReportUseCase) Stats(ctx context.Context, actor entity.Identity) (*dto.TaskStatsResponse, error) {
	list, err := uc.repos.Tasks.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	stats := computeStats(list, time.Now())
	return &stats, nil
}

// Report agrega las tareas propias según kind: tasks (por estado), projects (por proyecto)
// o users (por asignado).
func (uc *ReportUseCase) Report(ctx context.Context, actor entity.Identity, kind string) (*dto.ReportResponse, error) {
	list, err := uc.repos.Tasks.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	var rows []dto.ReportRow
	switch kind {
	case dto.ReportTasks:
		rows = byStatus(list)
	case dto.ReportProjects:
		names, err := uc.projectNames(ctx, actor)
		if err != nil {
			return nil, err
		}
		rows = countBy(list, func(t *entity.Task) string {
			if t.ProjectID == nil {
				return labelNoProject
			}
			if name, ok := names[*t.ProjectID]; ok {
				return name
			}
			return labelNoProject
		})
	case dto.ReportUsers:
		rows = countBy(list, func(t *entity.Task) string {
			if t.AssignedTo == "" {
				return labelUnassigned
			}
			return t.AssignedTo
		})
	default:
		return nil, domain.NewValidationError("Tipo de reporte inválido: use tasks, projects o users")
	}
	return &dto.ReportResponse{Kind: kind, GeneratedAt: time.Now().UTC(), Rows: rows}, nil
}

// PDF genera el reporte de tareas (resumen por estado y tabla) en PDF.
func (uc *ReportUseCase) PDF(ctx context.Context, actor entity.Identity) ([]byte, error) {
	list, err := uc.repos.Tasks.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	names, err := uc.projectNames(ctx, actor)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return uc.pdf.GenerateTaskReportPDF(ctx, TaskReportData{
		Username:     actor.Username,
		GeneratedAt:  now,
		Stats:        computeStats(list, now),
		ByStatus:     byStatus(list),
		Tasks:        list,
		ProjectNames: names,
	})
}

func (uc *ReportUseCase) projectNames(ctx context.Context, actor entity.Identity) (map[string]string, error) {
	projects, err := uc.repos.Projects.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}

func computeStats(list []*entity.Task, now time.Time) dto.TaskStatsResponse {
	var s dto.TaskStatsResponse
	s.Total = len(list)
	for _, t := range list {
		if t.Status.IsTerminal() {
			s.Completed++
		}
		if t.Priority.IsHigh() {
			s.HighPriority++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	s.Pending = s.Total - s.Completed
	return s
}

// byStatus incluye todos los estados, también los que no tienen tareas.
func byStatus(list []*entity.Task) []dto.ReportRow {
	counts := map[entity.TaskStatus]int{}
	for _, t := range list {
		counts[t.Status]++
	}
	rows := make([]dto.ReportRow, 0, len(entity.TaskStatuses))
	for _, st := range entity.TaskStatuses {
		rows = append(rows, dto.ReportRow{Label: string(st), Count: counts[st]})
	}
	return rows
}

// countBy agrupa por etiqueta; mayor cantidad primero y, a igualdad, alfabético.
func countBy(list []*entity.Task, label func(*entity.Task) string) []dto.ReportRow {
	counts := map[string]int{}
	for _, t := range list {
		counts[label(t)]++
	}
	rows := make([]dto.ReportRow, 0, len(counts))
	for l, c := range counts {
		rows = append(rows, dto.ReportRow{Label: l, Count: c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}
