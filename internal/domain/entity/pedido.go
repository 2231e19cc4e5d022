package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. Cualquier estado es alcanzable desde cualquier otro;
// lo único que se controla es el rol de quien lo cambia.
const (
	EstadoPendiente     = "pendiente"
	EstadoEnPreparacion = "en_preparacion"
	EstadoListo         = "listo"
	EstadoEntregado     = "entregado"
	EstadoCancelado     = "cancelado"
)

// Estados lista de estados válidos.
var Estados = []string{EstadoPendiente, EstadoEnPreparacion, EstadoListo, EstadoEntregado, EstadoCancelado}

// IsValidEstado indica si e es un estado de pedido conocido.
func IsValidEstado(e string) bool {
	for _, s := range Estados {
		if s == e {
			return true
		}
	}
	return false
}

// Límites de entrada. numero_mesa y cantidad se guardan como INTEGER.
const (
	MaxNotasLen   = 500 // caracteres
	MaxNumeroMesa = 10000
	MaxCantidad   = 1000
)

// MaxImporte mayor importe representable en NUMERIC(12,2) (precio y total).
var MaxImporte = decimal.RequireFromString("9999999999.99")

// Pedido orden de una mesa. Posee sus OrderItems (se borran en cascada con él).
// Total siempre es la suma de precio × cantidad de los ítems vigentes; nunca lo fija el cliente.
type Pedido struct {
	ID                 int64
	UsuarioID          int64
	NumeroMesa         int
	Estado             string
	Total              decimal.Decimal
	Notas              *string
	Version            int
	FechaCreacion      time.Time
	FechaActualizacion time.Time

	// Cargados al leer el pedido completo.
	Usuario *User
	Items   []OrderItem
}

// OrderItem línea de un pedido. Identidad compuesta (PedidoID, PlatoID).
type OrderItem struct {
	PedidoID int64
	PlatoID  int64
	Cantidad int

	Plato *Plato // detalle actual del plato, cargado al leer
}
