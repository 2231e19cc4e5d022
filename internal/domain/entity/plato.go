package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plato representa un ítem del menú. Los pedidos lo referencian por ID; no lo poseen.
type Plato struct {
	ID          int64
	Nombre      string // único, comparación exacta
	Descripcion *string
	Precio      decimal.Decimal // > 0
	Categoria   string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
