package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// PedidoFilter filtros de listado de pedidos.
type PedidoFilter struct {
	Estado      string // vacío = todos
	OldestFirst bool   // cola de cocina: por fecha de creación ascendente
	Limit       int
	Offset      int
}

// PedidoRepository define el puerto de persistencia para Pedido y sus OrderItems.
type PedidoRepository interface {
	// Create inserta cabecera e ítems y asigna ID. Debe ejecutarse dentro de una transacción.
	Create(ctx context.Context, p *entity.Pedido) error
	// GetByID carga el pedido con su creador y sus ítems (cada uno con el plato actual).
	GetByID(ctx context.Context, id int64) (*entity.Pedido, error)
	// GetForUpdate carga solo la cabecera y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Pedido, error)
	List(ctx context.Context, f PedidoFilter) ([]*entity.Pedido, error)
	// UpdateHeader persiste numero_mesa, estado, notas, total, version y fecha_actualizacion.
	UpdateHeader(ctx context.Context, p *entity.Pedido) error
	// ReplaceItems borra los ítems actuales del pedido e inserta los nuevos.
	ReplaceItems(ctx context.Context, pedidoID int64, items []entity.OrderItem) error
	// Delete borra el pedido (ítems en cascada). domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id int64) error
}
