package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
)

// PlatoHandler maneja las peticiones HTTP del menú (protegido).
type PlatoHandler struct {
	uc       *usecase.PlatoUseCase
	validate *Validator
}

// NewPlatoHandler construye el handler.
func NewPlatoHandler(uc *usecase.PlatoUseCase, validate *Validator) *PlatoHandler {
	return &PlatoHandler{uc: uc, validate: validate}
}

// Create godoc
// @Summary      Crear plato
// @Tags         platos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlatoRequest  true  "Datos del plato"
// @Success      201   {object}  dto.PlatoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /platos/ [post]
func (h *PlatoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlatoRequest
	if err := parseBody(c, h.validate, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener plato por ID
// @Tags         platos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del plato"
// @Success      200  {object}  dto.PlatoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /platos/{id} [get]
func (h *PlatoHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar platos
// @Tags         platos
// @Security     Bearer
// @Produce      json
// @Param        is_active  query  bool    false  "Solo activos / inactivos"
// @Param        categoria  query  string  false  "Subcadena de categoría"
// @Param        skip       query  int     false  "Desplazamiento"  default(0)
// @Param        limit      query  int     false  "Límite"          default(100)
// @Success      200        {array}  dto.PlatoResponse
// @Router       /platos/ [get]
func (h *PlatoHandler) List(c *fiber.Ctx) error {
	var in dto.PlatoListRequest
	if err := parseQuery(c, h.validate, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar plato
// @Tags         platos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del plato"
// @Param        body  body  dto.UpdatePlatoRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.PlatoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /platos/{id} [put]
func (h *PlatoHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdatePlatoRequest
	if err := parseBody(c, h.validate, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar plato
// @Tags         platos
// @Security     Bearer
// @Param        id   path  int  true  "ID del plato"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /platos/{id} [delete]
func (h *PlatoHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
