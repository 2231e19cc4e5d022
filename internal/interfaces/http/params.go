package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id inválido")
	}
	return id, nil
}

// parseBody decodifica el cuerpo y valida sus etiquetas.
func parseBody(c *fiber.Ctx, v *Validator, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
	}
	return v.Validate(out)
}

// parseQuery decodifica los parámetros de consulta y valida sus etiquetas.
func parseQuery(c *fiber.Ctx, v *Validator, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	return v.Validate(out)
}
