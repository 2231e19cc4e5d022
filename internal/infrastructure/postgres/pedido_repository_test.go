package postgres

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

func TestItemArrays(t *testing.T) {
	ids, cantidades, err := itemArrays([]entity.OrderItem{{PlatoID: 7, Cantidad: 3}, {PlatoID: 9, Cantidad: math.MaxInt32}})
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, ids)
	assert.Equal(t, []int32{3, math.MaxInt32}, cantidades)

	// Sin la validación, int32(1<<32 + 1) quedaría en 1 mientras el total usa el valor completo.
	var desborde int64 = 1<<32 + 1
	_, _, err = itemArrays([]entity.OrderItem{{PlatoID: 7, Cantidad: int(desborde)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = itemArrays([]entity.OrderItem{{PlatoID: 7, Cantidad: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNumeroMesa(t *testing.T) {
	mesa, err := numeroMesa(12)
	require.NoError(t, err)
	assert.EqualValues(t, 12, mesa)

	var desborde int64 = math.MaxInt32 + 1
	_, err = numeroMesa(int(desborde))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = numeroMesa(0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
