package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/api/metrics"
	"github.com/dmm-municipal/dmm-api/internal/api/middleware"
	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = middleware.SessionCookie

// CookieOptions controls the session cookie.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
}

func NewAuthHandler(authService ports.AuthService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

type loginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"contrasena"`
}

// registerRequest is the public registration payload.
type registerRequest struct {
	ID       int64  `json:"id_usuario" validate:"required,gt=0"`
	RoleID   int64  `json:"id_rol" validate:"required,gt=0"`
	Username string `json:"usuario" validate:"required,usuario"`
	Password string `json:"contrasena" validate:"required,min=6"`
	Name     string `json:"nombre" validate:"required"`
}

// createUserRequest is the authenticated creation payload. The username
// character set is not restricted on this path.
type createUserRequest struct {
	ID       int64  `json:"id_usuario" validate:"required,gt=0"`
	RoleID   int64  `json:"id_rol" validate:"required,gt=0"`
	Username string `json:"usuario" validate:"required"`
	Password string `json:"contrasena" validate:"required,min=6"`
	Name     string `json:"nombre" validate:"required"`
}

// Login authenticates a user and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credenciales"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.cookie.TTL.Seconds()),
	})
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: "Login exitoso", User: user})
}

// Logout clears the session cookie. The token itself stays valid until it expires.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	return respond(c, http.StatusOK, "Logout exitoso", nil)
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Envelope
// @Failure      401  {object}  Envelope
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Envelope{Success: true, User: user})
}

// Roles lists the roles known to the credential store.
//
// @Summary      List roles
// @Tags         auth
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /auth/roles [get]
func (h *AuthHandler) Roles(c echo.Context) error {
	roles, err := h.authService.Roles(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", roles)
}

// Register is the public self-registration endpoint.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Datos del usuario"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /auth/registro [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		ID:       req.ID,
		RoleID:   req.RoleID,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Usuario registrado exitosamente", user)
}

// CreateUser creates a user on behalf of the authenticated actor.
//
// @Summary      Create a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Datos del usuario"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      401   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /auth/crear-usuario [post]
func (h *AuthHandler) CreateUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.CreateUser(c.Request().Context(), actor, ports.RegisterInput{
		ID:       req.ID,
		RoleID:   req.RoleID,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Usuario creado exitosamente", user)
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "rejected"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
