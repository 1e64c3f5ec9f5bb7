package mysql

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type UserRepository struct {
	exec *Executor
}

func NewUserRepository(exec *Executor) *UserRepository {
	return &UserRepository{exec: exec}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "obtener_usuario_por_nombre", username)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "obtener_usuario_byid", id)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.NewUser) error {
	return r.exec.Exec(ctx, "crear_usuario", u.ID, u.RoleID, u.Username, u.PasswordHash, u.Name)
}

func (r *UserRepository) ListRoles(ctx context.Context) ([]domain.Row, error) {
	recs, err := r.exec.Query(ctx, "obtener_roles")
	if err != nil {
		return nil, err
	}
	return recs.rows(), nil
}

func (r *UserRepository) findOne(ctx context.Context, proc string, arg any) (*domain.User, error) {
	recs, err := r.exec.Query(ctx, proc, arg)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrUserNotFound
	}
	rec := recs[0]
	return &domain.User{
		ID:           rec.Int64("id_usuario"),
		Username:     rec.String("usuario"),
		Name:         rec.String("nombre"),
		Role:         domain.ParseRole(rec.String("rol")),
		PasswordHash: rec.String("contrasena"),
	}, nil
}
