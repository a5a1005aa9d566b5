package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tareas-api/internal/application/audit"
	"github.com/jhoicas/Tareas-api/internal/application/dto"
)

// HistoryHandler lectura del historial de auditoría y registro manual.
type HistoryHandler struct {
	rec *audit.Recorder
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(rec *audit.Recorder) *HistoryHandler {
	return &HistoryHandler{rec: rec}
}

// List godoc
// @Summary      Historial
// @Description  Con taskId devuelve el historial de la tarea; sin él, las últimas 100 entradas.
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        taskId  query  string  false  "ID de la tarea"
// @Success      200  {array}  dto.HistoryResponse
// @Router       /history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	var (
		out []dto.HistoryResponse
		err error
	)
	if taskID := c.Query("taskId"); taskID != "" {
		out, err = h.rec.ForTask(c.UserContext(), GetIdentity(c), taskID)
	} else {
		out, err = h.rec.Recent(c.UserContext(), GetIdentity(c))
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar entrada de historial
// @Tags         history
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateHistoryRequest  true  "Entrada"
// @Success      201   {object}  dto.HistoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /history [post]
func (h *HistoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHistoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.rec.Append(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
