// Package pdf genera el reporte de tareas en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de tareas + usuario │ Fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total | Completadas | Pendientes | Alta | Vencidas │
//	│  POR ESTADO: una línea por estado                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Título | Estado | Prioridad | Proyecto | Vence  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"html"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Tareas-api/internal/application/analytics"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
)

var _ analytics.TaskReportPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// MarotoPDFGenerator implementa analytics.TaskReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateTaskReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateTaskReportPDF(_ context.Context, data analytics.TaskReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de tareas", true).
		WithAuthor(data.Username, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableTaskRows(data)...)
	if len(data.Tasks) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No hay tareas registradas.", props.Text{Size: 8, Color: colorGray, Top: 2, Align: align.Center}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título + usuario (izq) y fecha (der).
func headerRow(data analytics.TaskReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE TAREAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Usuario: "+data.Username, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRows: contadores y desglose por estado.
func summaryRows(data analytics.TaskReportData) []core.Row {
	s := data.Stats
	metric := func(label string, value int, c *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(strconv.Itoa(value), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: c, Align: align.Center, Top: 5,
			}),
		)
	}
	rows := []core.Row{
		row.New(14).Add(
			col.New(1),
			metric("Total", s.Total, colorPrimary),
			metric("Completadas", s.Completed, colorPrimary),
			metric("Pendientes", s.Pending, colorPrimary),
			metric("Alta prioridad", s.HighPriority, colorPrimary),
			metric("Vencidas", s.Overdue, colorAlert),
			col.New(1),
		),
		row.New(6).Add(col.New(12).Add(
			text.New("POR ESTADO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, r := range data.ByStatus {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(r.Label, props.Text{Size: 8, Left: 2})),
			col.New(2).Add(text.New(strconv.Itoa(r.Count), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de tareas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Título", 4, align.Left),
		h("Estado", 2, align.Left),
		h("Prioridad", 1, align.Left),
		h("Proyecto", 2, align.Left),
		h("Vence", 2, align.Right),
	)
}

// tableTaskRows: una fila por tarea. Las vencidas se marcan en rojo.
func tableTaskRows(data analytics.TaskReportData) []core.Row {
	result := make([]core.Row, 0, len(data.Tasks))
	for _, t := range data.Tasks {
		due := "-"
		dueColor := colorGray
		if t.DueDate != nil {
			due = t.DueDate.Format(entity.DueDateLayout)
			if t.IsOverdue(data.GeneratedAt) {
				dueColor = colorAlert
			}
		}
		project := "-"
		if t.ProjectID != nil {
			if name, ok := data.ProjectNames[*t.ProjectID]; ok {
				project = html.UnescapeString(name)
			}
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.FormatInt(t.Number, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(truncate(html.UnescapeString(t.Title), 60), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(t.Status), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(string(t.Priority), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(truncate(project, 30), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(due, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: dueColor})),
		))
	}
	return result
}

// truncate corta a n runas agregando "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
