package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// PlatoFilter filtros de listado del menú.
type PlatoFilter struct {
	IsActive  *bool
	Categoria string // subcadena, sin distinguir mayúsculas
	Limit     int
	Offset    int
}

// PlatoRepository define el puerto de persistencia para Plato (DIP).
type PlatoRepository interface {
	Create(ctx context.Context, plato *entity.Plato) error
	GetByID(ctx context.Context, id int64) (*entity.Plato, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Plato, error)
	Update(ctx context.Context, plato *entity.Plato) error
	List(ctx context.Context, f PlatoFilter) ([]*entity.Plato, error)
	// Delete devuelve domain.ErrNotFound si no existe y domain.ErrConflict si algún pedido lo usa.
	Delete(ctx context.Context, id int64) error
}
