package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

const (
	pedidoColumns = `p.id, p.usuario_id, p.numero_mesa, p.estado, p.total, p.notas, p.version, p.fecha_creacion, p.fecha_actualizacion`
	pedidoUser    = `u.id, u.email, u.password_hash, u.nombre, u.role, u.is_active, u.created_at, u.updated_at`
	itemColumns   = `oi.pedido_id, oi.plato_id, oi.cantidad,
		pl.id, pl.nombre, pl.descripcion, pl.precio, pl.categoria, pl.is_active, pl.created_at, pl.updated_at`
)

// PedidoRepo implementación del puerto PedidoRepository sobre PostgreSQL (usable con pool o tx).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// Create inserta la cabecera y luego los ítems en una sola sentencia.
func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (usuario_id, numero_mesa, estado, total, notas, version, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	mesa, err := numeroMesa(p.NumeroMesa)
	if err != nil {
		return err
	}
	err = r.q.QueryRow(ctx, query,
		p.UsuarioID, mesa, p.Estado, p.Total, p.Notas, p.Version, p.FechaCreacion, p.FechaActualizacion,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	if err := r.insertItems(ctx, p.ID, p.Items); err != nil {
		return err
	}
	for i := range p.Items {
		p.Items[i].PedidoID = p.ID
	}
	return nil
}

// GetByID carga el pedido con su creador y sus ítems.
func (r *PedidoRepo) GetByID(ctx context.Context, id int64) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + `, ` + pedidoUser + `
		FROM pedidos p JOIN users u ON u.id = p.usuario_id
		WHERE p.id = $1`
	p, err := scanPedidoWithUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Pedido{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// GetForUpdate carga la cabecera con SELECT ... FOR UPDATE.
func (r *PedidoRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos p WHERE p.id = $1 FOR UPDATE`
	var p entity.Pedido
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UsuarioID, &p.NumeroMesa, &p.Estado, &p.Total, &p.Notas, &p.Version, &p.FechaCreacion, &p.FechaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido for update: %w", err)
	}
	return &p, nil
}

// List lista pedidos (con creador e ítems) filtrando por estado.
func (r *PedidoRepo) List(ctx context.Context, f repository.PedidoFilter) ([]*entity.Pedido, error) {
	order := "p.id"
	if f.OldestFirst {
		order = "p.fecha_creacion, p.id"
	}
	query := `SELECT ` + pedidoColumns + `, ` + pedidoUser + `
		FROM pedidos p JOIN users u ON u.id = p.usuario_id
		WHERE ($1::text = '' OR p.estado = $1::text)
		ORDER BY ` + order + `
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.Estado, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	list := make([]*entity.Pedido, 0)
	for rows.Next() {
		p, err := scanPedidoWithUser(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateHeader persiste los campos mutables de la cabecera.
func (r *PedidoRepo) UpdateHeader(ctx context.Context, p *entity.Pedido) error {
	query := `
		UPDATE pedidos
		SET numero_mesa = $2, estado = $3, notas = $4, total = $5, version = $6, fecha_actualizacion = $7
		WHERE id = $1`
	mesa, err := numeroMesa(p.NumeroMesa)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, query, p.ID, mesa, p.Estado, p.Notas, p.Total, p.Version, p.FechaActualizacion)
	if err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPedidoNotFound
	}
	return nil
}

// ReplaceItems descarta los ítems actuales e inserta los nuevos.
func (r *PedidoRepo) ReplaceItems(ctx context.Context, pedidoID int64, items []entity.OrderItem) error {
	if _, _, err := itemArrays(items); err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE pedido_id = $1`, pedidoID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(ctx, pedidoID, items)
}

// Delete borra el pedido; order_items cae por ON DELETE CASCADE.
func (r *PedidoRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrPedidoNotFound
	}
	return nil
}

func (r *PedidoRepo) insertItems(ctx context.Context, pedidoID int64, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	platoIDs, cantidades, err := itemArrays(items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO order_items (pedido_id, plato_id, cantidad)
		SELECT $1, t.plato_id, t.cantidad
		FROM unnest($2::bigint[], $3::int[]) AS t(plato_id, cantidad)`
	if _, err := r.q.Exec(ctx, query, pedidoID, platoIDs, cantidades); err != nil {
		if isUniqueViolation(err) {
			return domain.Invalid("items", "plato repetido en el pedido")
		}
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

func numeroMesa(n int) (int32, error) {
	if n <= 0 || n > math.MaxInt32 {
		return 0, domain.Invalid("numero_mesa", fmt.Sprintf("fuera de rango: %d", n))
	}
	return int32(n), nil
}

// itemArrays arma los arreglos para unnest. cantidad es INTEGER: fuera de rango no se trunca.
func itemArrays(items []entity.OrderItem) ([]int64, []int32, error) {
	platoIDs := make([]int64, len(items))
	cantidades := make([]int32, len(items))
	for i, it := range items {
		if it.Cantidad <= 0 || it.Cantidad > math.MaxInt32 {
			return nil, nil, domain.Invalid("items", fmt.Sprintf("cantidad fuera de rango: %d", it.Cantidad))
		}
		platoIDs[i] = it.PlatoID
		cantidades[i] = int32(it.Cantidad)
	}
	return platoIDs, cantidades, nil
}

// loadItems carga en una consulta los ítems (con plato) de todos los pedidos dados.
func (r *PedidoRepo) loadItems(ctx context.Context, pedidos []*entity.Pedido) error {
	if len(pedidos) == 0 {
		return nil
	}
	byID := make(map[int64]*entity.Pedido, len(pedidos))
	ids := make([]int64, 0, len(pedidos))
	for _, p := range pedidos {
		p.Items = make([]entity.OrderItem, 0)
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	query := `SELECT ` + itemColumns + `
		FROM order_items oi JOIN platos pl ON pl.id = oi.plato_id
		WHERE oi.pedido_id = ANY($1::bigint[])
		ORDER BY oi.pedido_id, oi.plato_id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		var pl entity.Plato
		if err := rows.Scan(
			&it.PedidoID, &it.PlatoID, &it.Cantidad,
			&pl.ID, &pl.Nombre, &pl.Descripcion, &pl.Precio, &pl.Categoria, &pl.IsActive, &pl.CreatedAt, &pl.UpdatedAt,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		it.Plato = &pl
		if p, ok := byID[it.PedidoID]; ok {
			p.Items = append(p.Items, it)
		}
	}
	return rows.Err()
}

func scanPedidoWithUser(row pgx.Row) (*entity.Pedido, error) {
	var p entity.Pedido
	var u entity.User
	if err := row.Scan(
		&p.ID, &p.UsuarioID, &p.NumeroMesa, &p.Estado, &p.Total, &p.Notas, &p.Version, &p.FechaCreacion, &p.FechaActualizacion,
		&u.ID, &u.Email, &u.PasswordHash, &u.Nombre, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Usuario = &u
	return &p, nil
}
