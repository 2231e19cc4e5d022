package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/domain"
)

// NewErrorHandler devuelve el ErrorHandler de Fiber: traduce errores de dominio a status
// y código estables, y registra los inesperados sin exponer el detalle al cliente.
func NewErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := resolveError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("request_id", GetRequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error no controlado")
		}
		return c.Status(status).JSON(body)
	}
}

func resolveError(err error) (int, dto.ErrorResponse) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message}
	}

	var forbidden *domain.ForbiddenError
	var platoInactive *domain.PlatoInactiveError
	switch {
	case errors.As(err, &forbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: forbidden.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrUserInactive):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "USER_INACTIVE", Message: "cuenta inactiva"}

	case errors.Is(err, auth.ErrMissingRole):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"}
	case errors.Is(err, auth.ErrTokenRevoked):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "TOKEN_REVOKED", Message: "la sesión fue cerrada"}
	case errors.Is(err, auth.ErrInvalidToken):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}

	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}

	case errors.As(err, &platoInactive):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "PLATO_INACTIVO", Message: platoInactive.Error()}
	case errors.Is(err, domain.ErrPlatoInactive):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "PLATO_INACTIVO", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un plato con ese nombre"}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()}

	case errors.Is(err, domain.ErrVersionMismatch):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "VERSION_MISMATCH", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	}

	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "ERROR"
	}
}
