package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tareas-api/internal/application/analytics"
)

// ReportHandler estadísticas y reportes sobre las tareas del usuario.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas de tareas
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TaskStatsResponse
// @Router       /tasks/stats [get]
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte agregado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "tasks | projects | users"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /reports/{kind} [get]
func (h *ReportHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.Report(c.UserContext(), GetIdentity(c), c.Params("kind"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TasksPDF godoc
// @Summary      Reporte de tareas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /reports/tasks/pdf [get]
func (h *ReportHandler) TasksPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.PDF(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="tareas-%s.pdf"`, time.Now().Format("20060102")))
	return c.Send(pdf)
}
