package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/api/handler"
	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

const (
	codeValidation      = "VALIDATION_ERROR"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeForbidden       = "FORBIDDEN"
	codeNotFound        = "NOT_FOUND"
	codeDuplicate       = "DUPLICADO"
	codeRateLimited     = "RATE_LIMITED"
	codeInternal        = "INTERNAL_ERROR"

	msgInternal  = "Error interno del servidor"
	msgForbidden = "Acceso denegado. No tienes permisos para realizar esta acción"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status and envelope code.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders {"success": false, "message": ..., "error": ...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.Envelope) {
	fail := func(msg, code string) handler.Envelope {
		return handler.Envelope{Success: false, Message: msg, Error: code}
	}

	var (
		validation *domain.ValidationError
		authErr    *domain.AuthError
		notFound   *domain.NotFoundError
		dup        *domain.DuplicateError
		he         *echo.HTTPError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, fail(validation.Message, codeValidation)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, fail("Credenciales inválidas", codeUnauthenticated)
	case errors.As(err, &authErr):
		return http.StatusUnauthorized, fail(authErr.Message, codeUnauthenticated)
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, fail(domain.ErrTokenRequired.Message, codeUnauthenticated)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, fail(msgForbidden, codeForbidden)
	case errors.As(err, &notFound):
		return http.StatusNotFound, fail(notFound.Message, codeNotFound)
	case errors.As(err, &dup):
		return http.StatusConflict, duplicateEnvelope(dup)
	case errors.As(err, &he):
		return httpErrorEnvelope(he, log, c)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, fail(msgInternal, codeInternal)
}

func duplicateEnvelope(dup *domain.DuplicateError) handler.Envelope {
	code := dup.Code
	if code == "" {
		code = codeDuplicate
	}
	msg := dup.Message
	if msg == "" {
		msg = "El registro ya existe"
		if dup.Value != "" {
			msg = fmt.Sprintf("El valor %s ya está registrado", dup.Value)
		}
	}
	return handler.Envelope{Success: false, Message: msg, Error: code, Field: dup.Field}
}

// httpErrorEnvelope renders echo's own errors (router 404/405, body limits, ...).
func httpErrorEnvelope(he *echo.HTTPError, log zerolog.Logger, c echo.Context) (int, handler.Envelope) {
	env := handler.Envelope{Success: false}
	switch he.Code {
	case http.StatusNotFound:
		env.Message, env.Error = "Endpoint no encontrado", codeNotFound
	case http.StatusUnauthorized:
		env.Message, env.Error = domain.ErrTokenRequired.Message, codeUnauthenticated
	case http.StatusForbidden:
		env.Message, env.Error = msgForbidden, codeForbidden
	case http.StatusTooManyRequests:
		env.Message, env.Error = "Demasiadas solicitudes, intenta de nuevo en un momento", codeRateLimited
	default:
		if he.Code >= http.StatusInternalServerError {
			log.Error().
				Err(he).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("server error")
			env.Message, env.Error = msgInternal, codeInternal
			return he.Code, env
		}
		env.Message, env.Error = fmt.Sprintf("%v", he.Message), http.StatusText(he.Code)
	}
	return he.Code, env
}
