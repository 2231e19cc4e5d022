package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

var _ repository.PlatoRepository = (*PlatoRepo)(nil)

const platoColumns = `id, nombre, descripcion, precio, categoria, is_active, created_at, updated_at`

// PlatoRepo implementación del puerto PlatoRepository sobre PostgreSQL (usable con pool o tx).
type PlatoRepo struct {
	q Querier
}

// NewPlatoRepository construye el adaptador de persistencia para el menú. Pasar pool o tx (Querier).
func NewPlatoRepository(q Querier) *PlatoRepo {
	return &PlatoRepo{q: q}
}

// Create persiste un nuevo plato y asigna su ID.
func (r *PlatoRepo) Create(ctx context.Context, plato *entity.Plato) error {
	query := `
		INSERT INTO platos (nombre, descripcion, precio, categoria, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		plato.Nombre, plato.Descripcion, plato.Precio, plato.Categoria, plato.IsActive, plato.CreatedAt, plato.UpdatedAt,
	).Scan(&plato.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plato: %w", err)
	}
	return nil
}

// GetByID obtiene un plato por ID.
func (r *PlatoRepo) GetByID(ctx context.Context, id int64) (*entity.Plato, error) {
	return r.getOne(ctx, `SELECT `+platoColumns+` FROM platos WHERE id = $1`, id)
}

// GetByNombre obtiene un plato por nombre exacto.
func (r *PlatoRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Plato, error) {
	return r.getOne(ctx, `SELECT `+platoColumns+` FROM platos WHERE nombre = $1`, nombre)
}

func (r *PlatoRepo) getOne(ctx context.Context, query string, arg any) (*entity.Plato, error) {
	p, err := scanPlato(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plato: %w", err)
	}
	return p, nil
}

// Update actualiza un plato existente.
func (r *PlatoRepo) Update(ctx context.Context, plato *entity.Plato) error {
	query := `
		UPDATE platos SET nombre = $2, descripcion = $3, precio = $4, categoria = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		plato.ID, plato.Nombre, plato.Descripcion, plato.Precio, plato.Categoria, plato.IsActive, plato.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update plato: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista platos ordenados por ID con filtros de estado y categoría.
func (r *PlatoRepo) List(ctx context.Context, f repository.PlatoFilter) ([]*entity.Plato, error) {
	query := `
		SELECT ` + platoColumns + `
		FROM platos
		WHERE ($1::boolean IS NULL OR is_active = $1)
		  AND ($2::text = '' OR categoria ILIKE '%' || $2::text || '%')
		ORDER BY id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.IsActive, f.Categoria, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list platos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Plato, 0)
	for rows.Next() {
		p, err := scanPlato(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plato: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un plato por ID. Si algún pedido lo referencia, la FK lo impide.
func (r *PlatoRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM platos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("el plato %d figura en pedidos; desactívelo en su lugar: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete plato: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPlato(row pgx.Row) (*entity.Plato, error) {
	var p entity.Plato
	if err := row.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Categoria, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
