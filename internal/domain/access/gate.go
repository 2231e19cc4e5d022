// Package access implementa el control de acceso por rol: una política declarativa
// (operación → roles permitidos) consultada igual por el middleware HTTP y por los casos de uso.
package access

import (
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// Operation nombre de una operación controlada.
type Operation string

// Operaciones controladas por rol.
const (
	PedidoCreate         Operation = "pedido.create"
	PedidoRead           Operation = "pedido.read"
	PedidoPending        Operation = "pedido.pending"
	PedidoUpdate         Operation = "pedido.update"
	PedidoUpdateMesaNota Operation = "pedido.update.mesa_notas"
	PedidoUpdateEstado   Operation = "pedido.update.estado"
	PedidoUpdateItems    Operation = "pedido.update.items"
	PedidoDelete         Operation = "pedido.delete"
	PedidoTicket         Operation = "pedido.ticket"
	PlatoRead            Operation = "plato.read"
	PlatoWrite           Operation = "plato.write"
	PlatoDelete          Operation = "plato.delete"
	UserManage           Operation = "user.manage"
)

// Policy asigna a cada operación el conjunto de roles que pueden ejecutarla.
type Policy map[Operation][]string

var (
	allRoles   = []string{entity.RoleAdmin, entity.RoleMesonero, entity.RoleCajero, entity.RoleCocina}
	adminOnly  = []string{entity.RoleAdmin}
	caja       = []string{entity.RoleAdmin, entity.RoleCajero}
	cocinaCaja = []string{entity.RoleAdmin, entity.RoleCocina, entity.RoleCajero}
)

// DefaultPolicy política del restaurante.
func DefaultPolicy() Policy {
	return Policy{
		PedidoCreate:         {entity.RoleAdmin, entity.RoleMesonero, entity.RoleCajero},
		PedidoRead:           allRoles,
		PedidoPending:        {entity.RoleAdmin, entity.RoleCocina},
		PedidoUpdate:         cocinaCaja,
		PedidoUpdateMesaNota: caja,
		PedidoUpdateEstado:   cocinaCaja,
		PedidoUpdateItems:    caja,
		PedidoDelete:         caja,
		PedidoTicket:         {entity.RoleAdmin, entity.RoleCajero, entity.RoleMesonero},
		PlatoRead:            allRoles,
		PlatoWrite:           caja,
		PlatoDelete:          adminOnly,
		UserManage:           adminOnly,
	}
}

// Gate evalúa la política. Es inmutable después de construido.
type Gate struct {
	policy map[Operation]map[string]struct{}
	order  map[Operation][]string
}

// NewGate construye el gate a partir de una política.
func NewGate(p Policy) *Gate {
	g := &Gate{
		policy: make(map[Operation]map[string]struct{}, len(p)),
		order:  make(map[Operation][]string, len(p)),
	}
	for op, roles := range p {
		set := make(map[string]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		g.policy[op] = set
		g.order[op] = append([]string(nil), roles...)
	}
	return g
}

// Allowed indica si role puede ejecutar op. Una operación desconocida se niega.
func (g *Gate) Allowed(role string, op Operation) bool {
	set, ok := g.policy[op]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}

// Check devuelve nil si role puede ejecutar op; si no, un *domain.ForbiddenError con los roles permitidos.
func (g *Gate) Check(role string, op Operation) error {
	if g.Allowed(role, op) {
		return nil
	}
	return &domain.ForbiddenError{
		Operation: string(op),
		Role:      role,
		Allowed:   g.Roles(op),
	}
}

// Roles devuelve una copia de los roles permitidos para op.
func (g *Gate) Roles(op Operation) []string {
	return append([]string(nil), g.order[op]...)
}

// Operations lista las operaciones definidas en la política.
func (g *Gate) Operations() []Operation {
	ops := make([]Operation, 0, len(g.order))
	for op := range g.order {
		ops = append(ops, op)
	}
	return ops
}
