package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Subject es el email del usuario; Role permite rechazar tokens legacy sin rol antes de ir a la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Role   string `json:"role"` // "admin" | "mesonero" | "cajero" | "cocina"
}

// Email devuelve el subject del token.
func (c *Claims) Email() string { return c.Subject }

// Codec firma y valida tokens con un secreto y un algoritmo HMAC fijos.
type Codec struct {
	secret     []byte
	method     jwt.SigningMethod
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// NewCodec construye el codec. algorithm ∈ {HS256, HS384, HS512}.
func NewCodec(secret, algorithm, issuer string, expMinutes int) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	var method jwt.SigningMethod
	switch algorithm {
	case "HS256", "":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("jwt: algoritmo no soportado: %s", algorithm)
	}
	return &Codec{
		secret:     []byte(secret),
		method:     method,
		issuer:     issuer,
		expiration: time.Duration(expMinutes) * time.Minute,
		now:        time.Now,
	}, nil
}

// Generate genera un token JWT firmado para el usuario (sub = email).
func (c *Codec) Generate(userID int64, email, role string) (string, error) {
	now := c.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiration)),
		},
		UserID: userID,
		Role:   role,
	}
	token := jwt.NewWithClaims(c.method, claims)
	return token.SignedString(c.secret)
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado, de otro algoritmo o tiene firma incorrecta.
func (c *Codec) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, errors.New("token sin subject")
	}
	return claims, nil
}

// Expiration vigencia de los tokens emitidos.
func (c *Codec) Expiration() time.Duration { return c.expiration }
