package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tareas-api/internal/application/dto"
	"github.com/jhoicas/Tareas-api/internal/domain/entity"
	"github.com/jhoicas/Tareas-api/pkg/jwt"
)

// Claves usadas en c.Locals() para propagar la identidad del token.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
	LocalPermisos = "permisos"
)

// AuthMiddleware valida el header Authorization: Bearer <token> e inyecta la identidad en el contexto.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "MISSING_TOKEN",
				Error: "Token requerido",
			})
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "INVALID_TOKEN",
				Error: "Formato de token inválido",
			})
		}
		sub, err := jwt.Parse(jwtSecret, strings.TrimSpace(auth[len(prefix):]))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:  "INVALID_TOKEN",
				Error: "Token inválido o expirado",
			})
		}
		c.Locals(LocalUserID, sub.UserID)
		c.Locals(LocalUsername, sub.Username)
		c.Locals(LocalRole, sub.Role)
		c.Locals(LocalPermisos, sub.Permisos)
		return c.Next()
	}
}

// RequireAdmin restringe la ruta a identidades con permisos=true. Va después de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetIdentity(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:  "FORBIDDEN",
				Error: "Se requieren permisos de administrador",
			})
		}
		return c.Next()
	}
}

// GetIdentity arma la identidad actuante desde el contexto (tras AuthMiddleware).
func GetIdentity(c *fiber.Ctx) entity.Identity {
	return entity.Identity{
		UserID:   GetUserID(c),
		Username: localString(c, LocalUsername),
		Role:     localString(c, LocalRole),
		Permisos: GetPermisos(c),
	}
}

// GetUserID obtiene el user_id del contexto (tras AuthMiddleware).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetPermisos obtiene el flag de administración del contexto.
func GetPermisos(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalPermisos).(bool)
	return v
}

func localString(c *fiber.Ctx, key string) string {
	v, _ := c.Locals(key).(string)
	return v
}
