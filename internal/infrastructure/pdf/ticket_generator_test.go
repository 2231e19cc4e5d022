package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

func TestGenerateTicket(t *testing.T) {
	notas := "sin cebolla"
	p := &entity.Pedido{
		ID:            42,
		NumeroMesa:    5,
		Estado:        entity.EstadoEnPreparacion,
		Total:         decimal.RequireFromString("41.00"),
		Notas:         &notas,
		FechaCreacion: time.Date(2026, 3, 1, 20, 15, 0, 0, time.UTC),
		Usuario:       &entity.User{Nombre: "Ana", Email: "ana@asiawok.com"},
		Items: []entity.OrderItem{
			{PlatoID: 1, Cantidad: 2, Plato: &entity.Plato{Nombre: "Arroz chaufa", Precio: decimal.RequireFromString("12.50")}},
			{PlatoID: 2, Cantidad: 2, Plato: &entity.Plato{Nombre: "Sopa wantán", Precio: decimal.RequireFromString("8.00")}},
		},
	}

	out, err := NewTicketGenerator("Asia Wok").GenerateTicket(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateTicket_SinPlatoCargado(t *testing.T) {
	p := &entity.Pedido{ID: 1, NumeroMesa: 1, Estado: "desconocido", Items: []entity.OrderItem{{PlatoID: 9, Cantidad: 1}}}
	out, err := NewTicketGenerator("Asia Wok").GenerateTicket(context.Background(), p)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "$0.00",
		"12.5":      "$12.50",
		"999.999":   "$1,000.00",
		"1234567.1": "$1,234,567.10",
		"-25.3":     "-$25.30",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}
