package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

// DefaultTokenTTL is the session lifetime.
const DefaultTokenTTL = 9 * time.Hour

const bcryptCost = 10

// Claims is the signed session payload.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"usuario"`
	Role     string `json:"rol"`
	jwt.RegisteredClaims
}

// AuthService implements login, session verification and user creation.
type AuthService struct {
	repo      ports.UserRepository
	audit     ports.AuditRecorder
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, audit ports.AuditRecorder, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		repo:      repo,
		audit:     orNop(audit),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
		log:       log,
	}
}

// TokenTTL is the lifetime of tokens issued by Login.
func (s *AuthService) TokenTTL() time.Duration { return s.tokenTTL }

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.NewValidationError("Usuario y contraseña son requeridos")
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		s.log.Info().Str("usuario", username).Msg("login rejected: unknown user")
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Info().Str("usuario", username).Msg("login rejected: bad password")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.audit.Record(auditEntry(user, domain.AuditLogin, "usuario", user.ID))
	s.log.Info().Int64("user_id", user.ID).Str("rol", user.Role.String()).Msg("login succeeded")
	return token, user, nil
}

// Authenticate verifies token and re-resolves its user from the store.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrTokenRequired
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected")
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUserInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

// Register is the public self-registration path.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.NewUser, error) {
	created, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.audit.Record(auditEntry(nil, domain.AuditUserCreated, "usuario", created.ID))
	s.log.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// CreateUser is the authenticated creation path; actor is recorded in the audit trail.
func (s *AuthService) CreateUser(ctx context.Context, actor *domain.User, in ports.RegisterInput) (*domain.NewUser, error) {
	created, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.audit.Record(auditEntry(actor, domain.AuditUserCreated, "usuario", created.ID))
	s.log.Info().Int64("user_id", created.ID).Int64("actor_id", actorID(actor)).Msg("user created")
	return created, nil
}

func (s *AuthService) Roles(ctx context.Context) ([]domain.Row, error) {
	return s.repo.ListRoles(ctx)
}

func (s *AuthService) create(ctx context.Context, in ports.RegisterInput) (*domain.NewUser, error) {
	if in.ID == 0 || in.RoleID == 0 || in.Username == "" || in.Password == "" || in.Name == "" {
		return nil, domain.NewValidationError("Todos los campos son requeridos: id_usuario, id_rol, usuario, contrasena, nombre")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.NewUser{
		ID:           in.ID,
		RoleID:       in.RoleID,
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}

func actorID(u *domain.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
