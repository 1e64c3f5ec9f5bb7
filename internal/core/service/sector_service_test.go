package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type stubSectorRepo struct {
	ports.SectorRepository
	created []ports.SectorInput
	status  map[int64]string
	err     error
}

func (r *stubSectorRepo) Create(_ context.Context, in ports.SectorInput) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, in)
	return nil
}

func (r *stubSectorRepo) SetStatus(_ context.Context, id int64, estado string) error {
	if r.err != nil {
		return r.err
	}
	if r.status == nil {
		r.status = make(map[int64]string)
	}
	r.status[id] = estado
	return nil
}

func TestSectorService_Create_RequiresName(t *testing.T) {
	repo := &stubSectorRepo{}
	svc := NewSectorService(repo, nil, zerolog.Nop())

	err := svc.Create(context.Background(), directora, ports.SectorInput{Nombre: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("repository should not be called, got %d calls", len(repo.created))
	}
}

func TestSectorService_Create_Audits(t *testing.T) {
	repo := &stubSectorRepo{}
	rec := &stubRecorder{}
	svc := NewSectorService(repo, rec, zerolog.Nop())

	if err := svc.Create(context.Background(), directora, ports.SectorInput{Nombre: "Zona 1", Estado: "activo"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(repo.created) != 1 || repo.created[0].Nombre != "Zona 1" {
		t.Fatalf("unexpected created sectors: %+v", repo.created)
	}
	got := rec.actions()
	if len(got) != 1 || got[0] != domain.AuditCreated {
		t.Fatalf("unexpected audit actions: %v", got)
	}
	if rec.entries[0].ActorID != directora.ID || rec.entries[0].Detail != "Zona 1" {
		t.Fatalf("unexpected audit entry: %+v", rec.entries[0])
	}
}

func TestSectorService_SetStatus(t *testing.T) {
	repo := &stubSectorRepo{}
	rec := &stubRecorder{}
	svc := NewSectorService(repo, rec, zerolog.Nop())

	if err := svc.SetStatus(context.Background(), administrador, 4, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty estado, got %v", err)
	}
	if err := svc.SetStatus(context.Background(), administrador, 4, "inactivo"); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if repo.status[4] != "inactivo" {
		t.Fatalf("expected estado inactivo, got %q", repo.status[4])
	}
	if got := rec.actions(); len(got) != 1 || got[0] != domain.AuditStatusChange {
		t.Fatalf("unexpected audit actions: %v", got)
	}
}

func TestSectorService_RepositoryErrorSkipsAudit(t *testing.T) {
	repo := &stubSectorRepo{err: domain.ErrUpstream}
	rec := &stubRecorder{}
	svc := NewSectorService(repo, rec, zerolog.Nop())

	if err := svc.Create(context.Background(), directora, ports.SectorInput{Nombre: "Zona 2"}); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if got := rec.actions(); len(got) != 0 {
		t.Fatalf("expected no audit entries, got %v", got)
	}
}
