//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/pedido"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/access"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/restaurante-api/internal/testutil"
)

// startPostgres levanta un PostgreSQL efímero y devuelve un pool con las migraciones aplicadas.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "restaurante",
				"POSTGRES_PASSWORD": "restaurante",
				"POSTGRES_DB":       "restaurante",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://restaurante:restaurante@%s:%s/restaurante?sslmode=disable", host, port.Port())
	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool, zerolog.Nop()))
	return pool
}

func TestPostgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	users := postgres.NewUserRepository(pool)
	platos := postgres.NewPlatoRepository(pool)
	pedidos := postgres.NewPedidoRepository(pool)

	newUser := func(t *testing.T, email, role string) *entity.User {
		t.Helper()
		u := &entity.User{Email: email, PasswordHash: "x", Nombre: role, Role: role, IsActive: true, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, users.Create(ctx, u))
		return u
	}
	newPlato := func(t *testing.T, nombre, precio string, activo bool) *entity.Plato {
		t.Helper()
		p := &entity.Plato{Nombre: nombre, Precio: decimal.RequireFromString(precio), Categoria: "wok", IsActive: activo, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, platos.Create(ctx, p))
		return p
	}

	admin := newUser(t, "admin@asiawok.com", entity.RoleAdmin)
	cajero := newUser(t, "cajero@asiawok.com", entity.RoleCajero)
	arroz := newPlato(t, "Arroz chaufa", "12.50", true)
	sopa := newPlato(t, "Sopa wantán", "8.00", true)
	pato := newPlato(t, "Pato laqueado", "30.00", false)

	uc := pedido.NewUseCase(postgres.NewTxRunner(pool), pedidos, access.NewGate(access.DefaultPolicy()),
		&testutil.MetricsRecorder{}, &testutil.TicketStub{}, zerolog.Nop())

	t.Run("migraciones idempotentes", func(t *testing.T) {
		require.NoError(t, postgres.Migrate(ctx, pool, zerolog.Nop()))
	})

	t.Run("usuarios", func(t *testing.T) {
		dup := &entity.User{Email: "admin@asiawok.com", PasswordHash: "x", Role: entity.RoleAdmin, CreatedAt: now, UpdatedAt: now}
		assert.ErrorIs(t, users.Create(ctx, dup), domain.ErrEmailAlreadyExists)

		got, err := users.GetByEmail(ctx, "nadie@asiawok.com")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = users.GetByID(ctx, cajero.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.RoleCajero, got.Role)

		activo := true
		list, err := users.List(ctx, repository.UserFilter{IsActive: &activo, Limit: 10})
		require.NoError(t, err)
		assert.Len(t, list, 2)

		assert.ErrorIs(t, users.Delete(ctx, 999999), domain.ErrNotFound)
	})

	t.Run("platos", func(t *testing.T) {
		dup := &entity.Plato{Nombre: "Arroz chaufa", Precio: decimal.NewFromInt(1), Categoria: "wok", CreatedAt: now, UpdatedAt: now}
		assert.ErrorIs(t, platos.Create(ctx, dup), domain.ErrDuplicate)

		got, err := platos.GetByNombre(ctx, "Arroz chaufa")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Precio.Equal(decimal.RequireFromString("12.50")), "numeric(10,2) vía pgx-shopspring-decimal")

		activo := false
		inactivos, err := platos.List(ctx, repository.PlatoFilter{IsActive: &activo, Categoria: "WO", Limit: 10})
		require.NoError(t, err)
		require.Len(t, inactivos, 1)
		assert.Equal(t, pato.ID, inactivos[0].ID)
	})

	t.Run("ciclo de vida de un pedido", func(t *testing.T) {
		notas := "sin cebolla"
		created, err := uc.Create(ctx, admin, dto.CreatePedidoRequest{
			NumeroMesa: 4,
			Notas:      &notas,
			Items: []dto.OrderItemRequest{
				{PlatoID: arroz.ID, Cantidad: 2},
				{PlatoID: sopa.ID, Cantidad: 1},
			},
		})
		require.NoError(t, err)
		assert.True(t, created.Total.Equal(decimal.RequireFromString("33.00")), "total=%s", created.Total)
		assert.Equal(t, 1, created.Version)
		require.Len(t, created.Items, 2)
		assert.Equal(t, "admin@asiawok.com", created.Usuario.Email)

		// Un plato inactivo en el reemplazo revierte toda la transacción.
		_, err = uc.Update(ctx, cajero, created.ID, dto.UpdatePedidoRequest{
			Estado: dto.Some(entity.EstadoEntregado),
			Items:  dto.Some([]dto.OrderItemRequest{{PlatoID: pato.ID, Cantidad: 1}}),
		})
		assert.ErrorIs(t, err, domain.ErrPlatoInactive)

		same, err := pedidos.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.EstadoPendiente, same.Estado)
		assert.Len(t, same.Items, 2)
		assert.Equal(t, 1, same.Version)

		updated, err := uc.Update(ctx, cajero, created.ID, dto.UpdatePedidoRequest{
			Items: dto.Some([]dto.OrderItemRequest{{PlatoID: sopa.ID, Cantidad: 3}}),
		})
		require.NoError(t, err)
		assert.True(t, updated.Total.Equal(decimal.RequireFromString("24.00")))
		assert.Equal(t, 2, updated.Version)
		require.Len(t, updated.Items, 1)

		var desborde int64 = 1<<32 + 1
		err = pedidos.ReplaceItems(ctx, created.ID, []entity.OrderItem{{PlatoID: sopa.ID, Cantidad: int(desborde)}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "la cantidad no se trunca a INTEGER")
		kept, err := pedidos.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, kept.Items, 1)
		assert.Equal(t, 3, kept.Items[0].Cantidad)

		stale := 1
		_, err = uc.Update(ctx, cajero, created.ID, dto.UpdatePedidoRequest{
			Estado:  dto.Some(entity.EstadoListo),
			Version: &stale,
		})
		assert.ErrorIs(t, err, domain.ErrVersionMismatch)

		pend, err := pedidos.List(ctx, repository.PedidoFilter{Estado: entity.EstadoPendiente, OldestFirst: true, Limit: 10})
		require.NoError(t, err)
		require.Len(t, pend, 1)
		assert.Equal(t, created.ID, pend[0].ID)

		// Plato y usuario referenciados no se pueden borrar.
		assert.ErrorIs(t, platos.Delete(ctx, sopa.ID), domain.ErrConflict)
		assert.ErrorIs(t, users.Delete(ctx, admin.ID), domain.ErrConflict)

		require.NoError(t, uc.Delete(ctx, admin, created.ID))
		var items int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_items WHERE pedido_id = $1`, created.ID).Scan(&items))
		assert.Zero(t, items, "ítems borrados en cascada")

		assert.NoError(t, platos.Delete(ctx, sopa.ID))
	})
}
