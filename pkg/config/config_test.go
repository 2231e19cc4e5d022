package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "postgres://postgres:@localhost:5432/restaurante?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_SecretKeyAlias(t *testing.T) {
	v := viper.New()
	v.Set("SECRET_KEY", "legacy")
	v.Set("JWT_ALGORITHM", "hs512")
	v.Set("JWT_EXPIRATION_MINUTES", "30")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.JWT.Secret)
	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
	assert.Equal(t, 30, cfg.JWT.Expiration)
}

func TestFromViper_DatabaseURLTienePrioridad(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/r")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/r", cfg.DB.ConnectionString())
}

func TestFromViper_Invalida(t *testing.T) {
	_, err := fromViper(viper.New())
	assert.Error(t, err, "sin secreto debe fallar")

	v := viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("JWT_ALGORITHM", "RS256")
	_, err = fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("JWT_SECRET", "x")
	v.Set("JWT_EXPIRATION_MINUTES", 0)
	_, err = fromViper(v)
	assert.Error(t, err)
}
