package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn      func(ctx context.Context, username, password string) (string, *domain.User, error)
	registerFn   func(ctx context.Context, in ports.RegisterInput) (*domain.NewUser, error)
	createUserFn func(ctx context.Context, actor *domain.User, in ports.RegisterInput) (*domain.NewUser, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrTokenInvalid
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.NewUser, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) CreateUser(ctx context.Context, actor *domain.User, in ports.RegisterInput) (*domain.NewUser, error) {
	return s.createUserFn(ctx, actor, in)
}

func (s *stubAuthService) Roles(context.Context) ([]domain.Row, error) {
	return []domain.Row{{"id_rol": int64(1), "nombre": "Directora"}}, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, *domain.User, error) {
			if username != "directora" || password != "secreto" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed.jwt.token", &domain.User{ID: 1, Username: "directora", Role: domain.RoleDirectora}, nil
		},
	}
	h := NewAuthHandler(stub, CookieOptions{Secure: true, TTL: 9 * time.Hour})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"usuario":"directora","contrasena":"secreto"}`), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != SessionCookie || ck.Value != "signed.jwt.token" {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
	if !ck.HttpOnly || !ck.Secure || ck.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie flags not set: %+v", ck)
	}
	if ck.MaxAge != int((9 * time.Hour).Seconds()) {
		t.Fatalf("unexpected max-age: %d", ck.MaxAge)
	}

	if strings.Contains(rec.Body.String(), "signed.jwt.token") {
		t.Fatalf("token leaked in body: %s", rec.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["usuario"] != "directora" || user["rol"] != "Directora" {
		t.Fatalf("unexpected user payload: %v", resp["user"])
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, CookieOptions{TTL: time.Hour})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"usuario":"directora","contrasena":"mala"}`), rec)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie expected on failure")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("no body expected from the handler, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, CookieOptions{TTL: time.Hour})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Me_RequiresUser(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, CookieOptions{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), rec)
	if err := h.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), rec)
	c.Set("user", &domain.User{ID: 3, Username: "tecnica", Role: domain.RoleTecnica})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"usuario":"tecnica"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.NewUser, error) {
			if in.ID != 7 || in.RoleID != 3 || in.Username != "ana_lopez" || in.Name != "Ana" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.NewUser{ID: in.ID, RoleID: in.RoleID, Username: in.Username, Name: in.Name}, nil
		},
	}
	h := NewAuthHandler(stub, CookieOptions{})

	body := `{"id_usuario":7,"id_rol":3,"usuario":"ana_lopez","contrasena":"secreto","nombre":"Ana"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/registro", body), rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secreto") {
		t.Fatalf("password leaked in body")
	}
}

func TestAuthHandler_Register_UsernameWithSpace(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.NewUser, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, CookieOptions{})

	body := `{"id_usuario":7,"id_rol":3,"usuario":"ana lopez","contrasena":"secreto","nombre":"Ana"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/registro", body), httptest.NewRecorder())

	err := h.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(ve.Message, "letras, números y guiones bajos") {
		t.Fatalf("message does not cite the username rule: %q", ve.Message)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, CookieOptions{})

	body := `{"id_usuario":7,"id_rol":3,"usuario":"ana","contrasena":"123","nombre":"Ana"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/registro", body), httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := h.Register(c); !errors.As(err, &ve) || !strings.Contains(ve.Message, "contrasena") {
		t.Fatalf("expected contrasena validation error, got %v", err)
	}
}

func TestAuthHandler_CreateUser_AllowsAnyUsername(t *testing.T) {
	e := newTestEcho()
	var got ports.RegisterInput
	stub := &stubAuthService{
		createUserFn: func(_ context.Context, actor *domain.User, in ports.RegisterInput) (*domain.NewUser, error) {
			if actor == nil || actor.ID != 1 {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			got = in
			return &domain.NewUser{ID: in.ID, Username: in.Username}, nil
		},
	}
	h := NewAuthHandler(stub, CookieOptions{})

	body := `{"id_usuario":8,"id_rol":2,"usuario":"maria jose","contrasena":"secreto","nombre":"María José"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/crear-usuario", body), rec)
	c.Set("user", &domain.User{ID: 1, Username: "directora", Role: domain.RoleDirectora})

	if err := h.CreateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated || got.Username != "maria jose" {
		t.Fatalf("unexpected result: %d %+v", rec.Code, got)
	}
}
