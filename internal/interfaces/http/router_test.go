package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tareas-api/internal/application/analytics"
	"github.com/jhoicas/Tareas-api/internal/application/audit"
	"github.com/jhoicas/Tareas-api/internal/application/auth"
	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/application/notify"
	"github.com/jhoicas/Tareas-api/internal/application/tasks"
	"github.com/jhoicas/Tareas-api/internal/application/usecase"
	"github.com/jhoicas/Tareas-api/internal/application/validation"
	"github.com/jhoicas/Tareas-api/internal/infrastructure/memory"
	"github.com/jhoicas/Tareas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tareas-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Tareas-api/internal/interfaces/http"
)

// newAPI arma la API completa sobre el almacén en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	v := validation.New()
	photos, err := storage.NewDiskPhotoStore(t.TempDir(), "/uploads", 1<<20)
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(repos, store, v, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	}, bcrypt.MinCost)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		TaskUC:    tasks.NewLifecycleUseCase(repos, store, v),
		ProjectUC: usecase.NewProjectUseCase(repos, store, v),
		CommentUC: usecase.NewCommentUseCase(repos, store, v),
		UserUC:    usecase.NewUserUseCase(repos, store, photos, v),
		ReportUC:  analytics.NewReportUseCase(repos, pdf.NewMarotoPDFGenerator()),
		Recorder:  audit.NewRecorder(repos, store, v),
		Notifier:  notify.NewNotifier(repos, store, v),
		JWTSecret: testJWTSecret,
		AppName:   "tareas-api-test",
	})
	return app
}

// call envía una petición JSON y devuelve la respuesta con el cuerpo ya leído.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	return decode[dto.LoginResponse](t, body).Token
}

// seedUsers crea admin (vía /setup) y los usuarios bob y alice; devuelve sus tokens.
func seedUsers(t *testing.T, app *fiber.App) (admin, bob, alice string) {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/setup", "", dto.SetupRequest{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	admin = login(t, app, "admin", "admin123")

	for _, u := range []string{"bob", "alice"} {
		resp, body := call(t, app, http.MethodPost, "/users", admin, dto.CreateUserRequest{Username: u, Password: "secreto1"})
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}
	return admin, login(t, app, "bob", "secreto1"), login(t, app, "alice", "secreto1")
}

func TestHealth(t *testing.T) {
	resp, body := call(t, newAPI(t), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")
}

func TestSetup_SoloUnaVez(t *testing.T) {
	app := newAPI(t)
	seedUsers(t, app)

	resp, body := call(t, app, http.MethodPost, "/setup", "", dto.SetupRequest{Username: "otro", Password: "otro1234"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "CONFLICT")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := newAPI(t)
	seedUsers(t, app)

	resp, bad := call(t, app, http.MethodPost, "/login", "", dto.LoginRequest{Username: "bob", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, unknown := call(t, app, http.MethodPost, "/login", "", dto.LoginRequest{Username: "nadie", Password: "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, string(bad), string(unknown), "usuario inexistente y contraseña incorrecta responden igual")
}

func TestLogin_DevuelveSesion(t *testing.T) {
	app := newAPI(t)
	seedUsers(t, app)

	resp, body := call(t, app, http.MethodPost, "/login", "", dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, body)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "admin", out.User.Username)
	assert.Equal(t, "admin", out.User.Role)
	assert.True(t, out.User.Permisos)
}

func TestUsers_AltaSoloAdmin(t *testing.T) {
	app := newAPI(t)
	_, bob, _ := seedUsers(t, app)

	resp, _ := call(t, app, http.MethodPost, "/users", bob, dto.CreateUserRequest{Username: "carol", Password: "secreto1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodPut, "/users/alice/password", bob, dto.ResetPasswordRequest{Password: "nueva123"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodGet, "/users", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.UserResponse](t, body), 3)
}

func TestUsers_AdminRestableceContrasena(t *testing.T) {
	app := newAPI(t)
	admin, _, _ := seedUsers(t, app)

	resp, _ := call(t, app, http.MethodPut, "/users/alice/password", admin, dto.ResetPasswordRequest{Password: "nueva123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login(t, app, "alice", "nueva123")

	resp, _ = call(t, app, http.MethodPut, "/users/nadie/password", admin, dto.ResetPasswordRequest{Password: "nueva123"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRutasProtegidas_SinToken401(t *testing.T) {
	app := newAPI(t)
	for _, path := range []string{"/tasks", "/projects", "/history", "/notifications", "/users", "/profile", "/reports/tasks"} {
		resp, body := call(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Contains(t, string(body), "MISSING_TOKEN", path)
	}
}

// Escenario completo: bob crea "Ship release" asignada a alice, la completa y la borra.
func TestTasks_EscenarioShipRelease(t *testing.T) {
	app := newAPI(t)
	_, bob, alice := seedUsers(t, app)

	resp, body := call(t, app, http.MethodPost, "/tasks", bob, dto.TaskRequest{Title: "Ship release", AssignedTo: "alice"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	task := decode[dto.TaskResponse](t, body)
	assert.Equal(t, int64(1), task.Number)
	assert.Equal(t, "Pendiente", task.Status)
	assert.Equal(t, "Media", task.Priority)

	// alice recibe una notificación sin leer
	resp, body = call(t, app, http.MethodGet, "/notifications?unread=true", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inbox := decode[[]dto.NotificationResponse](t, body)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Nueva tarea asignada: Ship release", inbox[0].Message)
	assert.Equal(t, "/tasks/"+task.ID, inbox[0].Link)

	resp, body = call(t, app, http.MethodPatch, "/notifications/read-all", alice, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), decode[dto.MarkAllReadResponse](t, body).Updated)

	_, body = call(t, app, http.MethodGet, "/notifications?unread=true", alice, nil)
	assert.Empty(t, decode[[]dto.NotificationResponse](t, body))
	_, body = call(t, app, http.MethodGet, "/notifications", alice, nil)
	assert.Len(t, decode[[]dto.NotificationResponse](t, body), 1)

	// la tarea no es de alice
	resp, _ = call(t, app, http.MethodGet, "/tasks/"+task.ID, alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = call(t, app, http.MethodPut, "/tasks/"+task.ID, alice, dto.TaskRequest{Title: "Robada"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = call(t, app, http.MethodDelete, "/tasks/"+task.ID, alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// bob la completa
	resp, body = call(t, app, http.MethodPut, "/tasks/"+task.ID, bob, dto.TaskRequest{Title: "Ship release", Status: "Completada", AssignedTo: "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "Completada", decode[dto.TaskResponse](t, body).Status)

	resp, body = call(t, app, http.MethodGet, "/history?taskId="+task.ID, bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	h := decode[[]dto.HistoryResponse](t, body)
	require.Len(t, h, 2)
	assert.Equal(t, "CREATED", h[0].Action)
	assert.Equal(t, "STATUS_CHANGED", h[1].Action)
	assert.Equal(t, "Pendiente", h[1].OldValue)
	assert.Equal(t, "Completada", h[1].NewValue)

	// bob la borra
	resp, _ = call(t, app, http.MethodDelete, "/tasks/"+task.ID, bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = call(t, app, http.MethodGet, "/tasks/"+task.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, body = call(t, app, http.MethodGet, "/history?taskId="+task.ID, bob, nil)
	h = decode[[]dto.HistoryResponse](t, body)
	require.Len(t, h, 3)
	assert.Equal(t, "DELETED", h[2].Action)
	assert.Equal(t, "Ship release", h[2].OldValue)

	// el feed global de bob trae lo más reciente primero
	_, body = call(t, app, http.MethodGet, "/history", bob, nil)
	feed := decode[[]dto.HistoryResponse](t, body)
	require.NotEmpty(t, feed)
	assert.Equal(t, "DELETED", feed[0].Action)

	// alice no ve entradas que no escribió
	_, body = call(t, app, http.MethodGet, "/history", alice, nil)
	assert.Empty(t, decode[[]dto.HistoryResponse](t, body))
}

func TestTasks_ValidacionDevuelve400ConDetalles(t *testing.T) {
	app := newAPI(t)
	_, bob, _ := seedUsers(t, app)

	resp, body := call(t, app, http.MethodPost, "/tasks", bob, map[string]any{
		"title":    "",
		"status":   "Archivada",
		"priority": "Urgente",
		"dueDate":  "1700-01-01",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, body)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	assert.Contains(t, errResp.Details, "El título es requerido")
	assert.Contains(t, errResp.Details, "La fecha de vencimiento debe estar entre 1890 y 2100")
	assert.Len(t, errResp.Details, 4)

	_, body = call(t, app, http.MethodGet, "/tasks", bob, nil)
	assert.Empty(t, decode[[]dto.TaskResponse](t, body), "no se persiste nada")
}

func TestTasks_CuerpoInvalido(t *testing.T) {
	app := newAPI(t)
	_, bob, _ := seedUsers(t, app)

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bob)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTasks_FiltrosYEstadisticas(t *testing.T) {
	app := newAPI(t)
	_, bob, _ := seedUsers(t, app)

	for _, in := range []dto.TaskRequest{
		{Title: "Preparar demo", Priority: "Alta"},
		{Title: "Escribir notas", Description: "para la DEMO", Status: "Completada"},
		{Title: "Vencida", DueDate: "2000-01-01"},
	} {
		resp, body := call(t, app, http.MethodPost, "/tasks", bob, in)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	}

	_, body := call(t, app, http.MethodGet, "/tasks?q=demo", bob, nil)
	assert.Len(t, decode[[]dto.TaskResponse](t, body), 2)

	_, body = call(t, app, http.MethodGet, "/tasks?status=Completada", bob, nil)
	assert.Len(t, decode[[]dto.TaskResponse](t, body), 1)

	resp, body := call(t, app, http.MethodGet, "/tasks/stats", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[dto.TaskStatsResponse](t, body)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.HighPriority)
	assert.Equal(t, 1, stats.Overdue)
}

func TestProjects_BorrarDesvinculaTareas(t *testing.T) {
	app := newAPI(t)
	_, bob, alice := seedUsers(t, app)

	resp, body := call(t, app, http.MethodPost, "/projects", bob, dto.ProjectRequest{Name: "Lanzamiento"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	project := decode[dto.ProjectResponse](t, body)

	_, body = call(t, app, http.MethodPost, "/tasks", bob, dto.TaskRequest{Title: "Con proyecto", ProjectID: &project.ID})
	task := decode[dto.TaskResponse](t, body)
	require.NotNil(t, task.ProjectID)

	resp, _ = call(t, app, http.MethodDelete, "/projects/"+project.ID, alice, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "el proyecto no es de alice")

	resp, _ = call(t, app, http.MethodDelete, "/projects/"+project.ID, bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = call(t, app, http.MethodGet, "/tasks/"+task.ID, bob, nil)
	assert.Nil(t, decode[dto.TaskResponse](t, body).ProjectID)
}

func TestComments_AsignadoPuedeComentar(t *testing.T) {
	app := newAPI(t)
	admin, bob, alice := seedUsers(t, app)

	_, body := call(t, app, http.MethodPost, "/tasks", bob, dto.TaskRequest{Title: "Revisar", AssignedTo: "alice"})
	task := decode[dto.TaskResponse](t, body)

	resp, body := call(t, app, http.MethodPost, "/comments", alice, dto.CreateCommentRequest{TaskID: task.ID, Content: "Hecho <b>ya</b>"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "Hecho &lt;b&gt;ya&lt;/b&gt;", decode[dto.CommentResponse](t, body).Content)

	resp, _ = call(t, app, http.MethodPost, "/comments", admin, dto.CreateCommentRequest{TaskID: task.ID, Content: "hola"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/comments?taskId="+task.ID, bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.CommentResponse](t, body), 1)

	resp, _ = call(t, app, http.MethodGet, "/comments", bob, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotifications_DestinatarioInexistente(t *testing.T) {
	app := newAPI(t)
	_, bob, _ := seedUsers(t, app)

	resp, body := call(t, app, http.MethodPost, "/notifications", bob, dto.CreateNotificationRequest{Recipient: "nadie", Message: "hola"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, body).Details, "El destinatario no existe")

	resp, _ = call(t, app, http.MethodPost, "/notifications", bob, dto.CreateNotificationRequest{Recipient: "alice", Message: "hola"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestProfile_CambioDeContrasena(t *testing.T) {
	app := newAPI(t)
	_, bob, _ := seedUsers(t, app)

	resp, body := call(t, app, http.MethodPut, "/profile/password", bob, dto.ChangePasswordRequest{CurrentPassword: "mala", NewPassword: "otra1234"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, body).Details, "La contraseña actual no es correcta")

	resp, _ = call(t, app, http.MethodPut, "/profile/password", bob, dto.ChangePasswordRequest{CurrentPassword: "secreto1", NewPassword: "otra1234"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login(t, app, "bob", "otra1234")

	resp, body = call(t, app, http.MethodPut, "/profile", bob, dto.UpdateProfileRequest{DisplayName: "Bob B."})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "Bob B.", decode[dto.UserResponse](t, body).DisplayName)

	_, body = call(t, app, http.MethodGet, "/profile", bob, nil)
	assert.Equal(t, "bob", decode[dto.UserResponse](t, body).Username)
}

func TestReports(t *testing.T) {
	app := newAPI(t)
	_, bob, _ := seedUsers(t, app)
	call(t, app, http.MethodPost, "/tasks", bob, dto.TaskRequest{Title: "Una"})

	resp, body := call(t, app, http.MethodGet, "/reports/tasks", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, dto.ReportTasks, decode[dto.ReportResponse](t, body).Kind)

	resp, _ = call(t, app, http.MethodGet, "/reports/inventario", bob, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = call(t, app, http.MethodGet, "/reports/tasks/pdf", bob, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
