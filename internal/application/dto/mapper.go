package dto

import (
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/pedido"
)

// FromUser convierte la entidad en su salida pública.
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromPlato convierte la entidad en su salida pública.
func FromPlato(p *entity.Plato) *PlatoResponse {
	if p == nil {
		return nil
	}
	return &PlatoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Categoria:   p.Categoria,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromPedido convierte el pedido cargado (con usuario e ítems) en su salida.
func FromPedido(p *entity.Pedido) *PedidoResponse {
	if p == nil {
		return nil
	}
	items := make([]OrderItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		out := OrderItemResponse{PlatoID: it.PlatoID, Cantidad: it.Cantidad}
		if it.Plato != nil {
			out.Plato = *FromPlato(it.Plato)
			out.Subtotal = pedido.LineTotal(it.Plato.Precio, it.Cantidad)
		}
		items = append(items, out)
	}
	return &PedidoResponse{
		ID:                 p.ID,
		UsuarioID:          p.UsuarioID,
		NumeroMesa:         p.NumeroMesa,
		Estado:             p.Estado,
		Total:              p.Total,
		Notas:              p.Notas,
		Version:            p.Version,
		FechaCreacion:      p.FechaCreacion,
		FechaActualizacion: p.FechaActualizacion,
		Usuario:            FromUser(p.Usuario),
		Items:              items,
	}
}

// FromPedidos convierte una lista de pedidos; nunca devuelve nil.
func FromPedidos(list []*entity.Pedido) []PedidoResponse {
	out := make([]PedidoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *FromPedido(p))
	}
	return out
}
