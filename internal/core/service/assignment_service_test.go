package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type stubAssignmentRepo struct {
	assigned []domain.Assignment
	removed  []domain.Assignment
	err      error
}

func (r *stubAssignmentRepo) Assign(_ context.Context, a domain.Assignment) error {
	if r.err != nil {
		return r.err
	}
	r.assigned = append(r.assigned, a)
	return nil
}

func (r *stubAssignmentRepo) Remove(_ context.Context, a domain.Assignment) error {
	if r.err != nil {
		return r.err
	}
	r.removed = append(r.removed, a)
	return nil
}

func (r *stubAssignmentRepo) Linked(context.Context, domain.OwnerKind, int64, domain.RelationKind) ([]domain.Row, error) {
	return []domain.Row{{"id_beneficiario": int64(1)}}, nil
}

func (r *stubAssignmentRepo) LinkedDetail(context.Context, domain.OwnerKind, int64) ([]domain.Row, error) {
	return nil, nil
}

func (r *stubAssignmentRepo) CountBeneficiarias(context.Context, domain.OwnerKind, int64) (int64, error) {
	return 0, nil
}

func TestAssignmentService_AssignAndRemove(t *testing.T) {
	repo := &stubAssignmentRepo{}
	rec := &stubRecorder{}
	svc := NewAssignmentService(repo, rec, zerolog.Nop())

	a := domain.Assignment{Owner: domain.OwnerProyecto, OwnerID: 1, Relation: domain.RelationSectores, RelatedID: 9}
	if err := svc.Assign(context.Background(), directora, a); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := svc.Remove(context.Background(), directora, a); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(repo.assigned) != 1 || len(repo.removed) != 1 {
		t.Fatalf("expected one assign and one remove, got %d/%d", len(repo.assigned), len(repo.removed))
	}
	got := rec.actions()
	if len(got) != 2 || got[0] != domain.AuditAssigned || got[1] != domain.AuditUnassigned {
		t.Errorf("unexpected audit actions: %v", got)
	}
	if rec.entries[0].RelatedID != 9 || rec.entries[0].Related != "sectores" {
		t.Errorf("unexpected audit entry: %+v", rec.entries[0])
	}
}

func TestAssignmentService_RejectsInvalid(t *testing.T) {
	repo := &stubAssignmentRepo{}
	svc := NewAssignmentService(repo, nil, zerolog.Nop())

	cases := []domain.Assignment{
		{Owner: "evento", OwnerID: 1, Relation: domain.RelationSectores, RelatedID: 1},
		{Owner: domain.OwnerProyecto, OwnerID: 1, Relation: "usuarios", RelatedID: 1},
		{Owner: domain.OwnerCapacitacion, OwnerID: 0, Relation: domain.RelationBeneficiarios, RelatedID: 1},
	}
	for _, a := range cases {
		if err := svc.Assign(context.Background(), directora, a); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", a, err)
		}
	}
	if len(repo.assigned) != 0 {
		t.Errorf("expected no store calls")
	}
}

func TestAssignmentService_StoreErrorWrapped(t *testing.T) {
	repo := &stubAssignmentRepo{err: domain.ErrUpstream}
	svc := NewAssignmentService(repo, nil, zerolog.Nop())

	a := domain.Assignment{Owner: domain.OwnerCapacitacion, OwnerID: 2, Relation: domain.RelationBeneficiarios, RelatedID: 5}
	err := svc.Assign(context.Background(), directora, a)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestAssignmentService_AssignExistingPairIsNoop(t *testing.T) {
	repo := &stubAssignmentRepo{err: &domain.DuplicateError{Value: "7-102"}}
	rec := &stubRecorder{}
	svc := NewAssignmentService(repo, rec, zerolog.Nop())

	a := domain.Assignment{Owner: domain.OwnerProyecto, OwnerID: 7, Relation: domain.RelationBeneficiarios, RelatedID: 102}
	if err := svc.Assign(context.Background(), directora, a); err != nil {
		t.Fatalf("expected success for an existing pair, got %v", err)
	}
	if got := rec.actions(); len(got) != 0 {
		t.Errorf("expected no audit entry for a no-op, got %v", got)
	}
}

func TestAssignmentService_RemoveMissingPairIsNoop(t *testing.T) {
	repo := &stubAssignmentRepo{err: &domain.NotFoundError{Message: "Asignación no encontrada"}}
	svc := NewAssignmentService(repo, nil, zerolog.Nop())

	a := domain.Assignment{Owner: domain.OwnerCapacitacion, OwnerID: 3, Relation: domain.RelationSectores, RelatedID: 4}
	if err := svc.Remove(context.Background(), directora, a); err != nil {
		t.Fatalf("expected success for a missing pair, got %v", err)
	}
}
