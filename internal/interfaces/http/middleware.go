package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const localRequestID = "requestid"

// RequestID asigna un X-Request-ID (uuid) a cada petición que no lo traiga.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: localRequestID,
	})
}

// GetRequestID devuelve el id de la petición actual.
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(localRequestID).(string)
	return id
}

type httpObserver interface {
	ObserveHTTP(method, route string, status int, seconds float64)
}

// RequestLogger registra cada petición con zerolog y observa su latencia.
// Se monta antes que las rutas; el status final lo fija el ErrorHandler cuando hay error.
func RequestLogger(log zerolog.Logger, obs httpObserver, errHandler fiber.ErrorHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := errHandler(c, err); herr != nil {
				return herr
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		if obs != nil {
			obs.ObserveHTTP(c.Method(), route, status, elapsed.Seconds())
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request")
		return nil
	}
}
