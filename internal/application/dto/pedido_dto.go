package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de un pedido al crearlo o reemplazar sus ítems.
type OrderItemRequest struct {
	PlatoID  int64 `json:"plato_id" validate:"gt=0"`
	Cantidad int   `json:"cantidad" validate:"gt=0,max=1000"`
}

// CreatePedidoRequest entrada para crear un pedido.
type CreatePedidoRequest struct {
	NumeroMesa int                `json:"numero_mesa" validate:"gt=0,max=10000"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notas      *string            `json:"notas" validate:"omitempty,max=500"`
}

// UpdatePedidoRequest entrada de actualización. Cada campo distingue ausente / null / valor;
// las reglas por rol se aplican según qué claves vengan en el cuerpo.
type UpdatePedidoRequest struct {
	NumeroMesa Optional[int]                `json:"numero_mesa"`
	Estado     Optional[string]             `json:"estado"`
	Notas      Optional[string]             `json:"notas"`
	Items      Optional[[]OrderItemRequest] `json:"items"`
	Version    *int                         `json:"version"` // si viene y no coincide: 409
}

// PedidoListRequest filtros del listado de pedidos.
type PedidoListRequest struct {
	PageRequest
	Estado string `query:"estado"`
}

// OrderItemResponse ítem con el detalle actual del plato.
type OrderItemResponse struct {
	PlatoID  int64           `json:"plato_id"`
	Cantidad int             `json:"cantidad"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Plato    PlatoResponse   `json:"plato"`
}

// PedidoResponse salida de un pedido con creador e ítems.
type PedidoResponse struct {
	ID                 int64               `json:"id"`
	UsuarioID          int64               `json:"usuario_id"`
	NumeroMesa         int                 `json:"numero_mesa"`
	Estado             string              `json:"estado"`
	Total              decimal.Decimal     `json:"total"`
	Notas              *string             `json:"notas"`
	Version            int                 `json:"version"`
	FechaCreacion      time.Time           `json:"fecha_creacion"`
	FechaActualizacion time.Time           `json:"fecha_actualizacion"`
	Usuario            *UserResponse       `json:"usuario"`
	Items              []OrderItemResponse `json:"items"`
}
