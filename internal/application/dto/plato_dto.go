package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlatoRequest entrada para crear un plato.
type CreatePlatoRequest struct {
	Nombre      string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Categoria   string          `json:"categoria" validate:"required,min=1,max=100"`
	IsActive    *bool           `json:"is_active"`
}

// UpdatePlatoRequest entrada para actualizar un plato; solo se cambian los campos enviados.
type UpdatePlatoRequest struct {
	Nombre      *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	Categoria   *string          `json:"categoria" validate:"omitempty,max=100"`
	IsActive    *bool            `json:"is_active"`
}

// PlatoListRequest filtros del listado del menú.
type PlatoListRequest struct {
	PageRequest
	IsActive  *bool  `query:"is_active"`
	Categoria string `query:"categoria"`
}

// PlatoResponse salida de un plato.
type PlatoResponse struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Categoria   string          `json:"categoria"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
