package ports

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// RegisterInput carries the fields of both user-creation paths. Field rules
// are enforced at the HTTP boundary; the two paths use different rule sets.
type RegisterInput struct {
	ID       int64
	RoleID   int64
	Username string
	Password string
	Name     string
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Register(ctx context.Context, in RegisterInput) (*domain.NewUser, error)
	CreateUser(ctx context.Context, actor *domain.User, in RegisterInput) (*domain.NewUser, error)
	Roles(ctx context.Context) ([]domain.Row, error)
}
