package pedido

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error no queda nada escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		pedidos repository.PedidoRepository,
		platos repository.PlatoRepository,
	) error) error
}

// Metrics contadores del ciclo de vida de los pedidos.
type Metrics interface {
	PedidoCreated(estado string)
	EstadoChanged(from, to string)
	ItemsReplaced()
	PedidoDeleted()
}

// TicketGenerator genera el ticket imprimible (PDF) de un pedido cargado.
type TicketGenerator interface {
	GenerateTicket(ctx context.Context, p *entity.Pedido) ([]byte, error)
}
