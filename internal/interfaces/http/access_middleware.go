package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain/access"
)

// RequireOperation devuelve un middleware Fiber que verifica que el rol del usuario
// autenticado pueda ejecutar op según el gate. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay usuario en el contexto (falta AuthMiddleware).
//   - 403 FORBIDDEN con los roles permitidos en el mensaje.
func RequireOperation(gate *access.Gate, op access.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no autenticado",
			})
		}
		if err := gate.Check(user.Role, op); err != nil {
			return err
		}
		return c.Next()
	}
}
