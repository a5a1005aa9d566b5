package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/usecase"
)

// CommentHandler comentarios sobre tareas visibles para el usuario.
type CommentHandler struct {
	uc *usecase.CommentUseCase
}

// NewCommentHandler construye el handler.
func NewCommentHandler(uc *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

// List godoc
// @Summary      Comentarios de una tarea
// @Tags         comments
// @Security     Bearer
// @Produce      json
// @Param        taskId  query  string  true  "ID de la tarea"
// @Success      200  {array}   dto.CommentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	taskID := c.Query("taskId")
	if taskID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TASK_ID", Error: "taskId es requerido"})
	}
	out, err := h.uc.ListByTask(c.UserContext(), GetIdentity(c), taskID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Comentar una tarea
// @Tags         comments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCommentRequest  true  "taskId, content"
// @Success      201   {object}  dto.CommentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
