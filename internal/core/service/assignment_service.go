package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

// AssignmentService applies single (owner, related) link changes. Batches are
// the caller's concern; see package reconcile.
type AssignmentService struct {
	repo  ports.AssignmentRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewAssignmentService(repo ports.AssignmentRepository, audit ports.AuditRecorder, log zerolog.Logger) *AssignmentService {
	return &AssignmentService{repo: repo, audit: orNop(audit), log: log}
}

// Assign links a pair. A pair that is already linked is left as is and
// reported as success.
func (s *AssignmentService) Assign(ctx context.Context, actor *domain.User, a domain.Assignment) error {
	if err := validAssignment(a); err != nil {
		return err
	}
	if err := s.repo.Assign(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			s.log.Debug().Str("assignment", a.String()).Msg("already assigned")
			return nil
		}
		return fmt.Errorf("assign %s: %w", a, err)
	}
	s.record(actor, domain.AuditAssigned, a)
	s.log.Info().Str("assignment", a.String()).Int64("actor_id", actorID(actor)).Msg("assigned")
	return nil
}

// Remove unlinks a pair. Removing a pair that is not linked succeeds.
func (s *AssignmentService) Remove(ctx context.Context, actor *domain.User, a domain.Assignment) error {
	if err := validAssignment(a); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, a); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Debug().Str("assignment", a.String()).Msg("already removed")
			return nil
		}
		return fmt.Errorf("remove %s: %w", a, err)
	}
	s.record(actor, domain.AuditUnassigned, a)
	s.log.Info().Str("assignment", a.String()).Int64("actor_id", actorID(actor)).Msg("unassigned")
	return nil
}

func (s *AssignmentService) Linked(ctx context.Context, owner domain.OwnerKind, ownerID int64, relation domain.RelationKind) ([]domain.Row, error) {
	if !owner.Valid() || !relation.Valid() {
		return nil, domain.NewValidationError("Relación no válida: %s/%s", owner, relation)
	}
	return s.repo.Linked(ctx, owner, ownerID, relation)
}

func (s *AssignmentService) LinkedDetail(ctx context.Context, owner domain.OwnerKind, ownerID int64) ([]domain.Row, error) {
	return s.repo.LinkedDetail(ctx, owner, ownerID)
}

func (s *AssignmentService) CountBeneficiarias(ctx context.Context, owner domain.OwnerKind, ownerID int64) (int64, error) {
	return s.repo.CountBeneficiarias(ctx, owner, ownerID)
}

func (s *AssignmentService) record(actor *domain.User, action domain.AuditAction, a domain.Assignment) {
	e := auditEntry(actor, action, string(a.Owner), a.OwnerID)
	e.Related = string(a.Relation)
	e.RelatedID = a.RelatedID
	s.audit.Record(e)
}

func validAssignment(a domain.Assignment) error {
	if !a.Owner.Valid() || !a.Relation.Valid() {
		return domain.NewValidationError("Relación no válida: %s/%s", a.Owner, a.Relation)
	}
	if a.OwnerID <= 0 || a.RelatedID <= 0 {
		return domain.NewValidationError("Identificadores no válidos")
	}
	return nil
}
