package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/access"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

func TestDefaultPolicy_AdminEnTodasLasOperaciones(t *testing.T) {
	g := access.NewGate(access.DefaultPolicy())
	require.NotEmpty(t, g.Operations())
	for _, op := range g.Operations() {
		assert.True(t, g.Allowed(entity.RoleAdmin, op), "admin debe poder %s", op)
	}
}

func TestDefaultPolicy_Matriz(t *testing.T) {
	g := access.NewGate(access.DefaultPolicy())

	cases := []struct {
		op      access.Operation
		allowed []string
	}{
		{access.PedidoCreate, []string{"admin", "mesonero", "cajero"}},
		{access.PedidoRead, []string{"admin", "mesonero", "cajero", "cocina"}},
		{access.PedidoPending, []string{"admin", "cocina"}},
		{access.PedidoUpdate, []string{"admin", "cocina", "cajero"}},
		{access.PedidoUpdateMesaNota, []string{"admin", "cajero"}},
		{access.PedidoUpdateEstado, []string{"admin", "cocina", "cajero"}},
		{access.PedidoUpdateItems, []string{"admin", "cajero"}},
		{access.PedidoDelete, []string{"admin", "cajero"}},
		{access.PedidoTicket, []string{"admin", "cajero", "mesonero"}},
		{access.PlatoRead, []string{"admin", "mesonero", "cajero", "cocina"}},
		{access.PlatoWrite, []string{"admin", "cajero"}},
		{access.PlatoDelete, []string{"admin"}},
		{access.UserManage, []string{"admin"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.op), func(t *testing.T) {
			assert.ElementsMatch(t, tc.allowed, g.Roles(tc.op))
			for _, role := range entity.Roles {
				want := false
				for _, a := range tc.allowed {
					if a == role {
						want = true
					}
				}
				assert.Equal(t, want, g.Allowed(role, tc.op), "rol %s", role)
			}
		})
	}
}

func TestGate_CheckDevuelveForbiddenConRoles(t *testing.T) {
	g := access.NewGate(access.DefaultPolicy())

	assert.NoError(t, g.Check(entity.RoleCajero, access.PedidoDelete))

	err := g.Check(entity.RoleMesonero, access.PedidoDelete)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	var fe *domain.ForbiddenError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, []string{"admin", "cajero"}, fe.Allowed)
	assert.Contains(t, err.Error(), "admin, cajero")
}

func TestGate_OperacionDesconocidaSeNiega(t *testing.T) {
	g := access.NewGate(access.Policy{})
	assert.False(t, g.Allowed(entity.RoleAdmin, access.PedidoRead))
	assert.ErrorIs(t, g.Check(entity.RoleAdmin, access.PedidoRead), domain.ErrForbidden)
}
