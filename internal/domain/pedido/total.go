// Package pedido contiene las reglas puras del pedido: validación de líneas y cálculo del total.
package pedido

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// Line línea solicitada por el cliente (plato + cantidad).
type Line struct {
	PlatoID  int64
	Cantidad int
}

// PlatoLookup busca un plato por ID; (nil, nil) si no existe.
type PlatoLookup func(ctx context.Context, id int64) (*entity.Plato, error)

// ValidateLines comprueba que haya al menos una línea, plato_id y cantidades dentro de rango
// y que no haya platos repetidos.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return domain.Invalid("items", "el pedido debe tener al menos un ítem")
	}
	seen := make(map[int64]struct{}, len(lines))
	for i, l := range lines {
		if l.PlatoID <= 0 {
			return domain.Invalid(fmt.Sprintf("items[%d].plato_id", i), "debe ser mayor que 0")
		}
		if l.Cantidad <= 0 {
			return domain.Invalid(fmt.Sprintf("items[%d].cantidad", i), "debe ser mayor que 0")
		}
		if l.Cantidad > entity.MaxCantidad {
			return domain.Invalid(fmt.Sprintf("items[%d].cantidad", i), fmt.Sprintf("máximo %d", entity.MaxCantidad))
		}
		if _, dup := seen[l.PlatoID]; dup {
			return domain.Invalid(fmt.Sprintf("items[%d].plato_id", i), fmt.Sprintf("el plato %d está repetido", l.PlatoID))
		}
		seen[l.PlatoID] = struct{}{}
	}
	return nil
}

// BuildItems resuelve cada línea contra el menú y calcula el total.
// Falla con *domain.PlatoNotFoundError o *domain.PlatoInactiveError en la primera línea inválida.
func BuildItems(ctx context.Context, lines []Line, lookup PlatoLookup) ([]entity.OrderItem, decimal.Decimal, error) {
	if err := ValidateLines(lines); err != nil {
		return nil, decimal.Zero, err
	}
	items := make([]entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		plato, err := lookup(ctx, l.PlatoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("buscar plato %d: %w", l.PlatoID, err)
		}
		if plato == nil {
			return nil, decimal.Zero, &domain.PlatoNotFoundError{PlatoID: l.PlatoID}
		}
		if !plato.IsActive {
			return nil, decimal.Zero, &domain.PlatoInactiveError{PlatoID: plato.ID, Nombre: plato.Nombre}
		}
		items = append(items, entity.OrderItem{PlatoID: l.PlatoID, Cantidad: l.Cantidad, Plato: plato})
	}
	total := Total(items)
	if total.GreaterThan(entity.MaxImporte) {
		return nil, decimal.Zero, domain.Invalid("items", "el total excede "+entity.MaxImporte.StringFixed(2))
	}
	return items, total, nil
}

// Total = Σ(precio × cantidad). Los ítems sin plato cargado no suman.
func Total(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Plato == nil {
			continue
		}
		total = total.Add(LineTotal(it.Plato.Precio, it.Cantidad))
	}
	return total
}

// LineTotal precio × cantidad.
func LineTotal(precio decimal.Decimal, cantidad int) decimal.Decimal {
	return precio.Mul(decimal.NewFromInt(int64(cantidad)))
}
