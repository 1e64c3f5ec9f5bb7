package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/api/handler"
	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
		field   string
	}{
		{"validation", domain.NewValidationError("nombre es requerido"), http.StatusBadRequest, "VALIDATION_ERROR", "nombre es requerido", ""},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHENTICATED", "Credenciales inválidas", ""},
		{"token invalid", domain.ErrTokenInvalid, http.StatusUnauthorized, "UNAUTHENTICATED", "Token no válido", ""},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN", msgForbidden, ""},
		{"not found", fmt.Errorf("get: %w", domain.ErrProyectoNotFound), http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado", ""},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict, "USUARIO_DUPLICADO", "El usuario ya existe", "usuario"},
		{"duplicate raw", &domain.DuplicateError{Value: "abc"}, http.StatusConflict, "DUPLICADO", "El valor abc ya está registrado", ""},
		{"upstream", fmt.Errorf("obtener_proyectos: %w: %w", domain.ErrUpstream, errors.New("dial tcp: refused")), http.StatusInternalServerError, "INTERNAL_ERROR", msgInternal, ""},
		{"router 404", echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Endpoint no encontrado", ""},
	}

	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tc.err, c)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			var body handler.Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Success || body.Error != tc.code || body.Message != tc.message || body.Field != tc.field {
				t.Fatalf("unexpected body: %+v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_HidesDriverErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("Error 1045: Access denied for user 'root'"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := rec.Body.String(); strings.Contains(got, "1045") || strings.Contains(got, "root") {
		t.Fatalf("driver detail leaked: %s", got)
	}
}
