package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/pkg/jwt"
)

// Locals keys del usuario autenticado en Fiber.
const (
	LocalUser   = "user"
	LocalClaims = "claims"
)

// authenticator resuelve el usuario dueño de un token. Lo implementa *auth.AuthUseCase.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, *jwt.Claims, error)
}

// AuthMiddleware valida el Bearer Token, recarga el usuario y lo deja en c.Locals.
// Errores del token o del usuario se delegan al ErrorHandler (401/403).
func AuthMiddleware(auth authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		user, claims, err := auth.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return err
		}
		c.Locals(LocalUser, user)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// GetUser devuelve el usuario autenticado (después del middleware de auth).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetRole devuelve el rol guardado del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.Role
	}
	return ""
}

// GetClaims devuelve los claims del token de la petición.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	cl, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return cl
}
