package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestCodec_GenerateAndParse(t *testing.T) {
	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			c, err := NewCodec(testSecret, alg, "restaurante-test", 60)
			require.NoError(t, err)

			tok, err := c.Generate(3, "cocina@asiawok.com", "cocina")
			require.NoError(t, err)

			claims, err := c.Parse(tok)
			require.NoError(t, err)
			assert.Equal(t, "cocina@asiawok.com", claims.Email())
			assert.Equal(t, "cocina", claims.Role)
			assert.EqualValues(t, 3, claims.UserID)
			assert.Equal(t, "restaurante-test", claims.Issuer)
			assert.NotEmpty(t, claims.ID, "cada token lleva un jti")
		})
	}
}

func TestNewCodec_Validaciones(t *testing.T) {
	_, err := NewCodec("", "HS256", "x", 60)
	assert.Error(t, err)

	_, err = NewCodec(testSecret, "RS256", "x", 60)
	assert.Error(t, err)
}

func TestCodec_TokenExpirado(t *testing.T) {
	c, err := NewCodec(testSecret, "HS256", "x", 60)
	require.NoError(t, err)
	c.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := c.Generate(1, "admin@asiawok.com", "admin")
	require.NoError(t, err)

	c.now = time.Now
	_, err = c.Parse(tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestCodec_SecretIncorrecto(t *testing.T) {
	a, err := NewCodec(testSecret, "HS256", "x", 60)
	require.NoError(t, err)
	b, err := NewCodec("otro-secret-completamente-distinto", "HS256", "x", 60)
	require.NoError(t, err)

	tok, err := a.Generate(1, "admin@asiawok.com", "admin")
	require.NoError(t, err)
	_, err = b.Parse(tok)
	assert.Error(t, err)
}

func TestCodec_AlgoritmoDistintoRechazado(t *testing.T) {
	a, err := NewCodec(testSecret, "HS512", "x", 60)
	require.NoError(t, err)
	b, err := NewCodec(testSecret, "HS256", "x", 60)
	require.NoError(t, err)

	tok, err := a.Generate(1, "admin@asiawok.com", "admin")
	require.NoError(t, err)
	_, err = b.Parse(tok)
	assert.Error(t, err)
}
