package repository

import (
	"context"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// UserFilter filtros de listado de usuarios.
type UserFilter struct {
	IsActive *bool
	Limit    int
	Offset   int
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	// Delete devuelve domain.ErrNotFound si no existe y domain.ErrConflict si tiene pedidos.
	Delete(ctx context.Context, id int64) error
}
