package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/pedido"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain/access"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
	apphttp "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/restaurante-api/internal/testutil"
	pkgjwt "github.com/jhoicas/restaurante-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "restaurante-test"
	testExpMin    = 60
	testPassword  = "secreto1"
)

type testEnv struct {
	app     *fiber.App
	store   *testutil.Store
	codec   *pkgjwt.Codec
	revoker *testutil.Revoker
	users   map[string]*entity.User // por rol
}

// newTestEnv arma la aplicación completa sobre el store en memoria, con un usuario por rol.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	codec, err := pkgjwt.NewCodec(testJWTSecret, "HS256", testIssuer, testExpMin)
	require.NoError(t, err)

	store := testutil.NewStore()
	revoker := &testutil.Revoker{}
	gate := access.NewGate(access.DefaultPolicy())
	log := zerolog.Nop()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	users := map[string]*entity.User{}
	for _, role := range entity.Roles {
		u := &entity.User{Email: role + "@asiawok.com", PasswordHash: string(hash), Nombre: role, Role: role, IsActive: true}
		require.NoError(t, store.Users().Create(context.Background(), u))
		users[role] = u
	}

	errHandler := apphttp.NewErrorHandler(log)
	app := fiber.New(fiber.Config{ErrorHandler: errHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:   auth.NewAuthUseCase(store.Users(), codec, revoker, log),
		PedidoUC: pedido.NewUseCase(store.TxRunner(), store.Pedidos(), gate, &testutil.MetricsRecorder{}, &testutil.TicketStub{}, log),
		PlatoUC:  usecase.NewPlatoUseCase(store.Platos(), log),
		UserUC:   usecase.NewUserUseCase(store.Users(), log),
		Gate:     gate,
	})

	return &testEnv{app: app, store: store, codec: codec, revoker: revoker, users: users}
}

// tokenForRole genera un JWT para el usuario sembrado con ese rol.
func (e *testEnv) tokenForRole(t *testing.T, role string) string {
	t.Helper()
	u := e.users[role]
	require.NotNil(t, u, "rol sin usuario: %s", role)
	tok, err := e.codec.Generate(u.ID, u.Email, u.Role)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// do lanza la petición y devuelve la respuesta.
func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	return decode[map[string]string](t, resp)["code"]
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/auth/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/auth/me", "Token abc", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/auth/me", "Bearer token.invalido.aqui", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

// Token sin claim de rol (legacy) → 401 MISSING_ROLE.
func TestAuthMiddleware_TokenSinRol_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	u := env.users[entity.RoleAdmin]
	tok, err := env.codec.Generate(u.ID, u.Email, "")
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/auth/me", "Bearer "+tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "token sin rol debe retornar 401")
	assert.Equal(t, "MISSING_ROLE", errorCode(t, resp))
}

func TestAuthMiddleware_SecretIncorrecto_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	otro, err := pkgjwt.NewCodec("otro-secret-completamente-distinto", "HS256", testIssuer, testExpMin)
	require.NoError(t, err)
	u := env.users[entity.RoleAdmin]
	tok, err := otro.Generate(u.ID, u.Email, u.Role)
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/auth/me", "Bearer "+tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioInactivo_Retorna403(t *testing.T) {
	env := newTestEnv(t)
	header := env.tokenForRole(t, entity.RoleCocina)
	u := env.users[entity.RoleCocina]
	u.IsActive = false
	require.NoError(t, env.store.Users().Update(context.Background(), u))

	resp := env.do(t, http.MethodGet, "/auth/me", header, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "USER_INACTIVE", errorCode(t, resp))
}

func TestAuthMe_DevuelveUsuario(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/auth/me", env.tokenForRole(t, entity.RoleCajero), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, "cajero@asiawok.com", body["email"])
	assert.Equal(t, "cajero", body["role"])
	assert.NotContains(t, body, "password_hash")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireOperation
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireOperation_AdminAccedeRutaAdmin(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/users/", env.tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin debe poder listar usuarios")
}

func TestRequireOperation_RolNoPermitido_Retorna403(t *testing.T) {
	env := newTestEnv(t)
	for _, role := range []string{entity.RoleMesonero, entity.RoleCajero, entity.RoleCocina} {
		resp := env.do(t, http.MethodGet, "/users/", env.tokenForRole(t, role), nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, role)

		body := decode[map[string]string](t, resp)
		assert.Equal(t, "FORBIDDEN", body["code"])
		assert.Contains(t, body["message"], "admin", "el mensaje lista los roles permitidos")
	}
}

func TestRequireOperation_ColaDeCocina(t *testing.T) {
	env := newTestEnv(t)
	cases := map[string]int{
		entity.RoleAdmin:    http.StatusOK,
		entity.RoleCocina:   http.StatusOK,
		entity.RoleMesonero: http.StatusForbidden,
		entity.RoleCajero:   http.StatusForbidden,
	}
	for role, want := range cases {
		resp := env.do(t, http.MethodGet, "/pedidos/pendientes", env.tokenForRole(t, role), nil)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, role)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests login / logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_JSONYFormulario(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "admin@asiawok.com", "password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "bearer", body["token_type"])
	assert.NotEmpty(t, body["access_token"])

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		bytes.NewBufferString("username=cocina%40asiawok.com&password="+testPassword))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	formResp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, formResp.StatusCode)
}

func TestLogin_CredencialesIncorrectas_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "admin@asiawok.com", "password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestLogin_EmailInvalido_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "no-es-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestLogout_RevocaElToken(t *testing.T) {
	env := newTestEnv(t)
	header := env.tokenForRole(t, entity.RoleMesonero)

	resp := env.do(t, http.MethodPost, "/auth/logout", header, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/auth/me", header, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "TOKEN_REVOKED", errorCode(t, resp))
}
