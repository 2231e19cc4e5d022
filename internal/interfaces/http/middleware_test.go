package http_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/restaurante-api/internal/interfaces/http"
)

type observation struct {
	method, route string
	status        int
}

type observerSpy struct {
	mu   sync.Mutex
	seen []observation
}

func (o *observerSpy) ObserveHTTP(method, route string, status int, _ float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, observation{method: method, route: route, status: status})
}

func TestRequestLogger_RegistraPanicRecuperado(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	obs := &observerSpy{}
	errHandler := apphttp.NewErrorHandler(zerolog.Nop())

	app := fiber.New(fiber.Config{ErrorHandler: errHandler})
	app.Use(apphttp.RequestID())
	app.Use(apphttp.RequestLogger(log, obs, errHandler))
	app.Use(recover.New())
	app.Get("/explota", func(*fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/explota", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", errorCode(t, resp))

	require.Len(t, obs.seen, 1)
	assert.Equal(t, observation{method: http.MethodGet, route: "/explota", status: http.StatusInternalServerError}, obs.seen[0])
	assert.Contains(t, buf.String(), `"status":500`)
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestRequestLogger_ErrorDeDominio(t *testing.T) {
	var buf bytes.Buffer
	obs := &observerSpy{}
	errHandler := apphttp.NewErrorHandler(zerolog.Nop())

	app := fiber.New(fiber.Config{ErrorHandler: errHandler})
	app.Use(apphttp.RequestLogger(zerolog.New(&buf), obs, errHandler))
	app.Get("/nada", func(*fiber.Ctx) error { return fiber.ErrNotFound })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nada", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Len(t, obs.seen, 1)
	assert.Equal(t, http.StatusNotFound, obs.seen[0].status)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
