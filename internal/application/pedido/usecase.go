// Package pedido implementa el ciclo de vida de los pedidos: creación, consulta,
// actualización con permisos por campo, borrado y ticket.
package pedido

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/access"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	dompedido "github.com/jhoicas/restaurante-api/internal/domain/pedido"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// UseCase orquesta las operaciones sobre pedidos.
type UseCase struct {
	tx      TxRunner
	pedidos repository.PedidoRepository
	gate    *access.Gate
	metrics Metrics
	tickets TicketGenerator
	log     zerolog.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. pedidos se usa para lecturas fuera de transacción.
func NewUseCase(
	tx TxRunner,
	pedidos repository.PedidoRepository,
	gate *access.Gate,
	metrics Metrics,
	tickets TicketGenerator,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		tx:      tx,
		pedidos: pedidos,
		gate:    gate,
		metrics: metrics,
		tickets: tickets,
		log:     log.With().Str("component", "pedidos").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create crea un pedido en estado pendiente con sus ítems, en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, caller *entity.User, in dto.CreatePedidoRequest) (*dto.PedidoResponse, error) {
	if err := uc.gate.Check(caller.Role, access.PedidoCreate); err != nil {
		return nil, err
	}
	if err := validateMesa(in.NumeroMesa); err != nil {
		return nil, err
	}
	if in.Notas != nil {
		if err := validateNotas(*in.Notas); err != nil {
			return nil, err
		}
	}

	var created *entity.Pedido
	err := uc.tx.Run(ctx, func(pedidos repository.PedidoRepository, platos repository.PlatoRepository) error {
		items, total, err := dompedido.BuildItems(ctx, toLines(in.Items), platos.GetByID)
		if err != nil {
			return err
		}
		now := uc.now()
		p := &entity.Pedido{
			UsuarioID:          caller.ID,
			NumeroMesa:         in.NumeroMesa,
			Estado:             entity.EstadoPendiente,
			Total:              total,
			Notas:              in.Notas,
			Version:            1,
			FechaCreacion:      now,
			FechaActualizacion: now,
			Items:              items,
		}
		if err := pedidos.Create(ctx, p); err != nil {
			return err
		}
		created, err = reload(ctx, pedidos, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PedidoCreated(created.Estado)
	uc.log.Info().
		Int64("pedido_id", created.ID).
		Int64("usuario_id", caller.ID).
		Int("numero_mesa", created.NumeroMesa).
		Str("total", created.Total.StringFixed(2)).
		Msg("pedido creado")
	return dto.FromPedido(created), nil
}

// List lista pedidos, opcionalmente filtrados por estado.
func (uc *UseCase) List(ctx context.Context, caller *entity.User, in dto.PedidoListRequest) ([]dto.PedidoResponse, error) {
	if err := uc.gate.Check(caller.Role, access.PedidoRead); err != nil {
		return nil, err
	}
	if in.Estado != "" && !entity.IsValidEstado(in.Estado) {
		return nil, invalidEstado(in.Estado)
	}
	in.DefaultPage()
	list, err := uc.pedidos.List(ctx, repository.PedidoFilter{Estado: in.Estado, Limit: in.Limit, Offset: in.Skip})
	if err != nil {
		return nil, err
	}
	return dto.FromPedidos(list), nil
}

// Pending cola de cocina: pedidos pendientes, los más antiguos primero.
func (uc *UseCase) Pending(ctx context.Context, caller *entity.User, page dto.PageRequest) ([]dto.PedidoResponse, error) {
	if err := uc.gate.Check(caller.Role, access.PedidoPending); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.pedidos.List(ctx, repository.PedidoFilter{
		Estado:      entity.EstadoPendiente,
		OldestFirst: true,
		Limit:       page.Limit,
		Offset:      page.Skip,
	})
	if err != nil {
		return nil, err
	}
	return dto.FromPedidos(list), nil
}

// Get obtiene un pedido por ID.
func (uc *UseCase) Get(ctx context.Context, caller *entity.User, id int64) (*dto.PedidoResponse, error) {
	if err := uc.gate.Check(caller.Role, access.PedidoRead); err != nil {
		return nil, err
	}
	p, err := uc.pedidos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPedidoNotFound
	}
	return dto.FromPedido(p), nil
}

// Update aplica los cambios presentes en la petición, cada uno controlado por rol.
// Cualquier error revierte la transacción completa: ítems, total y estado quedan como estaban.
func (uc *UseCase) Update(ctx context.Context, caller *entity.User, id int64, in dto.UpdatePedidoRequest) (*dto.PedidoResponse, error) {
	if err := uc.gate.Check(caller.Role, access.PedidoUpdate); err != nil {
		return nil, err
	}

	var (
		updated       *entity.Pedido
		prevEstado    string
		itemsReplaced bool
	)
	err := uc.tx.Run(ctx, func(pedidos repository.PedidoRepository, platos repository.PlatoRepository) error {
		p, err := pedidos.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPedidoNotFound
		}
		prevEstado = p.Estado

		// La sola presencia de la clave exige permiso, aunque el valor sea null.
		if in.NumeroMesa.Set || in.Notas.Set {
			if err := uc.gate.Check(caller.Role, access.PedidoUpdateMesaNota); err != nil {
				return err
			}
		}
		if in.NumeroMesa.HasValue() {
			if err := validateMesa(*in.NumeroMesa.Value); err != nil {
				return err
			}
			p.NumeroMesa = *in.NumeroMesa.Value
		}
		if in.Notas.HasValue() {
			if err := validateNotas(*in.Notas.Value); err != nil {
				return err
			}
			p.Notas = in.Notas.Value
		}

		if in.Estado.HasValue() {
			if err := uc.gate.Check(caller.Role, access.PedidoUpdateEstado); err != nil {
				return err
			}
			if !entity.IsValidEstado(*in.Estado.Value) {
				return invalidEstado(*in.Estado.Value)
			}
			p.Estado = *in.Estado.Value
		}

		if in.Items.HasValue() {
			if err := uc.gate.Check(caller.Role, access.PedidoUpdateItems); err != nil {
				return err
			}
			if len(*in.Items.Value) == 0 {
				return domain.Invalid("items", "la lista de ítems no puede estar vacía al modificar un pedido")
			}
		}

		if in.Version != nil && *in.Version != p.Version {
			return domain.ErrVersionMismatch
		}

		if in.Items.HasValue() {
			items, total, err := dompedido.BuildItems(ctx, toLines(*in.Items.Value), platos.GetByID)
			if err != nil {
				return err
			}
			if err := pedidos.ReplaceItems(ctx, p.ID, items); err != nil {
				return err
			}
			p.Total = total
			itemsReplaced = true
		}

		p.Version++
		p.FechaActualizacion = uc.now()
		if err := pedidos.UpdateHeader(ctx, p); err != nil {
			return err
		}
		updated, err = reload(ctx, pedidos, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if updated.Estado != prevEstado {
		uc.metrics.EstadoChanged(prevEstado, updated.Estado)
	}
	if itemsReplaced {
		uc.metrics.ItemsReplaced()
	}
	uc.log.Info().
		Int64("pedido_id", updated.ID).
		Int64("usuario_id", caller.ID).
		Str("role", caller.Role).
		Str("estado", updated.Estado).
		Int("version", updated.Version).
		Bool("items_reemplazados", itemsReplaced).
		Msg("pedido actualizado")
	return dto.FromPedido(updated), nil
}

// Delete elimina el pedido y, en cascada, sus ítems.
func (uc *UseCase) Delete(ctx context.Context, caller *entity.User, id int64) error {
	if err := uc.gate.Check(caller.Role, access.PedidoDelete); err != nil {
		return err
	}
	if err := uc.pedidos.Delete(ctx, id); err != nil {
		return err
	}
	uc.metrics.PedidoDeleted()
	uc.log.Info().Int64("pedido_id", id).Int64("usuario_id", caller.ID).Msg("pedido eliminado")
	return nil
}

// Ticket genera el PDF imprimible del pedido.
func (uc *UseCase) Ticket(ctx context.Context, caller *entity.User, id int64) ([]byte, error) {
	if err := uc.gate.Check(caller.Role, access.PedidoTicket); err != nil {
		return nil, err
	}
	p, err := uc.pedidos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPedidoNotFound
	}
	pdf, err := uc.tickets.GenerateTicket(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("generar ticket del pedido %d: %w", id, err)
	}
	return pdf, nil
}

// reload relee el pedido completo; si no aparece es un error interno, no un 404.
func reload(ctx context.Context, pedidos repository.PedidoRepository, id int64) (*entity.Pedido, error) {
	p, err := pedidos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("recargar pedido %d: no encontrado después de escribirlo", id)
	}
	return p, nil
}

func toLines(items []dto.OrderItemRequest) []dompedido.Line {
	lines := make([]dompedido.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, dompedido.Line{PlatoID: it.PlatoID, Cantidad: it.Cantidad})
	}
	return lines
}

func validateMesa(n int) error {
	if n <= 0 {
		return domain.Invalid("numero_mesa", "debe ser mayor que 0")
	}
	if n > entity.MaxNumeroMesa {
		return domain.Invalid("numero_mesa", fmt.Sprintf("máximo %d", entity.MaxNumeroMesa))
	}
	return nil
}

func validateNotas(s string) error {
	if utf8.RuneCountInString(s) > entity.MaxNotasLen {
		return domain.Invalid("notas", fmt.Sprintf("máximo %d caracteres", entity.MaxNotasLen))
	}
	return nil
}

func invalidEstado(e string) error {
	return domain.Invalid("estado", fmt.Sprintf("estado de pedido inválido: %q", e))
}
