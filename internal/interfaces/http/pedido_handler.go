package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/pedido"
)

// PedidoHandler maneja las peticiones HTTP de pedidos (protegido).
type PedidoHandler struct {
	uc       *pedido.UseCase
	validate *Validator
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *pedido.UseCase, validate *Validator) *PedidoHandler {
	return &PedidoHandler{uc: uc, validate: validate}
}

// Create godoc
// @Summary      Crear pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePedidoRequest  true  "Mesa, ítems y notas"
// @Success      201   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /pedidos/ [post]
func (h *PedidoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePedidoRequest
	if err := parseBody(c, h.validate, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "Filtro por estado"
// @Param        skip    query  int     false  "Desplazamiento"  default(0)
// @Param        limit   query  int     false  "Límite"          default(100)
// @Success      200     {array}  dto.PedidoResponse
// @Router       /pedidos/ [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	var in dto.PedidoListRequest
	if err := parseQuery(c, h.validate, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetUser(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Pending godoc
// @Summary      Cola de cocina (pendientes, más antiguos primero)
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PedidoResponse
// @Router       /pedidos/pendientes [get]
func (h *PedidoHandler) Pending(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, h.validate, &page); err != nil {
		return err
	}
	out, err := h.uc.Pending(c.UserContext(), GetUser(c), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/{id} [get]
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), GetUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar pedido (permisos por campo)
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID del pedido"
// @Param        body  body  dto.UpdatePedidoRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /pedidos/{id} [put]
func (h *PedidoHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdatePedidoRequest
	if err := parseBody(c, h.validate, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Tags         pedidos
// @Security     Bearer
// @Param        id   path  int  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/{id} [delete]
func (h *PedidoHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Ticket godoc
// @Summary      Ticket imprimible del pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /pedidos/{id}/ticket [get]
func (h *PedidoHandler) Ticket(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	pdf, err := h.uc.Ticket(c.UserContext(), GetUser(c), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=pedido-%d.pdf", id))
	return c.Send(pdf)
}
