package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
	"github.com/jhoicas/restaurante-api/pkg/jwt"
)

// Errores de autenticación. Todos envuelven domain.ErrUnauthorized (401).
var (
	ErrInvalidToken = fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized)
	ErrMissingRole  = fmt.Errorf("%w: token sin rol", domain.ErrUnauthorized)
	ErrTokenRevoked = fmt.Errorf("%w: token revocado", domain.ErrUnauthorized)
	ErrBadLogin     = fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
)

// Revoker lista de tokens revocados por jti (logout).
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: login, identidad del token y logout.
type AuthUseCase struct {
	users   repository.UserRepository
	codec   *jwt.Codec
	revoker Revoker
	log     zerolog.Logger
	now     func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, codec *jwt.Codec, revoker Revoker, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{
		users:   users,
		codec:   codec,
		revoker: revoker,
		log:     log.With().Str("component", "auth").Logger(),
		now:     time.Now,
	}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Credenciales incorrectas → ErrBadLogin; cuenta inactiva → domain.ErrUserInactive.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Warn().Str("email", email).Msg("login fallido: usuario inexistente")
		return nil, ErrBadLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Int64("usuario_id", user.ID).Msg("login fallido: password incorrecto")
		return nil, ErrBadLogin
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	token, err := uc.codec.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("firmar token: %w", err)
	}
	uc.log.Info().Int64("usuario_id", user.ID).Str("role", user.Role).Msg("login correcto")
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(uc.codec.Expiration().Seconds()),
		User:        *dto.FromUser(user),
	}, nil
}

// Authenticate resuelve el usuario dueño del token. El rol vigente es el guardado en
// base de datos, no el del token.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, *jwt.Claims, error) {
	claims, err := uc.codec.Parse(token)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	if claims.Role == "" {
		return nil, nil, ErrMissingRole
	}
	if claims.ID != "" {
		revoked, err := uc.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("consultar revocación: %w", err)
		}
		if revoked {
			return nil, nil, ErrTokenRevoked
		}
	}
	user, err := uc.users.GetByEmail(ctx, claims.Email())
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, nil, domain.ErrUserInactive
	}
	return user, claims, nil
}

// Logout revoca el token hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(uc.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := uc.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	uc.log.Info().Int64("usuario_id", claims.UserID).Msg("logout")
	return nil
}

