package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist guarda los jti de los tokens cerrados con logout hasta que expiran.
// Clave: revoked:<jti>
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist envuelve el cliente dado.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marca el token como revocado durante ttl.
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := d.client.Set(ctx, key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked indica si el token fue revocado.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("revoked check: %w", err)
	}
	return n > 0, nil
}

func key(jti string) string {
	return "revoked:" + jti
}

// NoopDenylist se usa cuando no hay Redis configurado: logout no revoca nada.
type NoopDenylist struct{}

func (NoopDenylist) Revoke(context.Context, string, time.Duration) error { return nil }

func (NoopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
