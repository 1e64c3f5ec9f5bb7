package ports

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// AssignmentRepository issues the per-pair assign/remove procedures. Both are
// expected to be idempotent at the store.
type AssignmentRepository interface {
	Assign(ctx context.Context, a domain.Assignment) error
	Remove(ctx context.Context, a domain.Assignment) error
	// Linked returns the rows currently linked to the owner for relation.
	Linked(ctx context.Context, owner domain.OwnerKind, ownerID int64, relation domain.RelationKind) ([]domain.Row, error)
	// LinkedDetail returns beneficiary rows with their full details.
	LinkedDetail(ctx context.Context, owner domain.OwnerKind, ownerID int64) ([]domain.Row, error)
	CountBeneficiarias(ctx context.Context, owner domain.OwnerKind, ownerID int64) (int64, error)
}

type AssignmentService interface {
	Assign(ctx context.Context, actor *domain.User, a domain.Assignment) error
	Remove(ctx context.Context, actor *domain.User, a domain.Assignment) error
	Linked(ctx context.Context, owner domain.OwnerKind, ownerID int64, relation domain.RelationKind) ([]domain.Row, error)
	LinkedDetail(ctx context.Context, owner domain.OwnerKind, ownerID int64) ([]domain.Row, error)
	CountBeneficiarias(ctx context.Context, owner domain.OwnerKind, ownerID int64) (int64, error)
}
