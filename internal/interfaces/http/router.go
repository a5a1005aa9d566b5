package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tareas-api/internal/application/analytics"
	"github.com/jhoicas/Tareas-api/internal/application/audit"
	"github.com/jhoicas/Tareas-api/internal/application/auth"
	"github.com/jhoicas/Tareas-api/internal/application/notify"
	"github.com/jhoicas/Tareas-api/internal/application/tasks"
	"github.com/jhoicas/Tareas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	TaskUC    *tasks.LifecycleUseCase
	ProjectUC *usecase.ProjectUseCase
	CommentUC *usecase.CommentUseCase
	UserUC    *usecase.UserUseCase
	ReportUC  *analytics.ReportUseCase
	Recorder  *audit.Recorder
	Notifier  *notify.Notifier
	JWTSecret string
	AppName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/setup", authHandler.Setup)
	app.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))

	taskHandler := NewTaskHandler(deps.TaskUC)
	reportHandler := NewReportHandler(deps.ReportUC)
	taskGroup := protected.Group("/tasks")
	taskGroup.Get("/", taskHandler.List)
	taskGroup.Post("/", taskHandler.Create)
	taskGroup.Get("/stats", reportHandler.Stats)
	taskGroup.Get("/:id", taskHandler.GetByID)
	taskGroup.Put("/:id", taskHandler.Update)
	taskGroup.Delete("/:id", taskHandler.Delete)

	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects := protected.Group("/projects")
	projects.Get("/", projectHandler.List)
	projects.Post("/", projectHandler.Create)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)

	commentHandler := NewCommentHandler(deps.CommentUC)
	comments := protected.Group("/comments")
	comments.Get("/", commentHandler.List)
	comments.Post("/", commentHandler.Create)

	historyHandler := NewHistoryHandler(deps.Recorder)
	history := protected.Group("/history")
	history.Get("/", historyHandler.List)
	history.Post("/", historyHandler.Create)

	notificationHandler := NewNotificationHandler(deps.Notifier)
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/", notificationHandler.Create)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)

	userHandler := NewUserHandler(deps.UserUC, deps.AuthUC)
	users := protected.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", RequireAdmin(), userHandler.Create)
	users.Put("/:username/password", RequireAdmin(), userHandler.ResetPassword)

	profile := protected.Group("/profile")
	profile.Get("/", userHandler.Profile)
	profile.Put("/", userHandler.UpdateProfile)
	profile.Put("/password", userHandler.ChangePassword)

	reports := protected.Group("/reports")
	reports.Get("/tasks/pdf", reportHandler.TasksPDF)
	reports.Get("/:kind", reportHandler.Report)
}
