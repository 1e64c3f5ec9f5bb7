package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type SectorService struct {
	repo  ports.SectorRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewSectorService(repo ports.SectorRepository, audit ports.AuditRecorder, log zerolog.Logger) *SectorService {
	return &SectorService{repo: repo, audit: orNop(audit), log: log}
}

func (s *SectorService) List(ctx context.Context) ([]domain.Sector, error) {
	return s.repo.List(ctx)
}

func (s *SectorService) Get(ctx context.Context, id int64) (*domain.Sector, error) {
	return s.repo.Get(ctx, id)
}

func (s *SectorService) BeneficiariasPorSector(ctx context.Context) ([]domain.Row, error) {
	return s.repo.BeneficiariasPorSector(ctx)
}

func (s *SectorService) Create(ctx context.Context, actor *domain.User, in ports.SectorInput) error {
	if strings.TrimSpace(in.Nombre) == "" {
		return domain.NewValidationError("El nombre del sector es requerido")
	}
	if err := s.repo.Create(ctx, in); err != nil {
		return err
	}
	e := auditEntry(actor, domain.AuditCreated, "sector", 0)
	e.Detail = in.Nombre
	s.audit.Record(e)
	s.log.Info().Str("nombre", in.Nombre).Int64("actor_id", actorID(actor)).Msg("sector created")
	return nil
}

func (s *SectorService) Update(ctx context.Context, actor *domain.User, id int64, in ports.SectorInput) error {
	if strings.TrimSpace(in.Nombre) == "" {
		return domain.NewValidationError("El nombre del sector es requerido")
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		return err
	}
	s.audit.Record(auditEntry(actor, domain.AuditUpdated, "sector", id))
	return nil
}

func (s *SectorService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(auditEntry(actor, domain.AuditDeleted, "sector", id))
	s.log.Info().Int64("id", id).Int64("actor_id", actorID(actor)).Msg("sector deleted")
	return nil
}

func (s *SectorService) SetStatus(ctx context.Context, actor *domain.User, id int64, estado string) error {
	if strings.TrimSpace(estado) == "" {
		return domain.NewValidationError("El estado es requerido")
	}
	if err := s.repo.SetStatus(ctx, id, estado); err != nil {
		return err
	}
	e := auditEntry(actor, domain.AuditStatusChange, "sector", id)
	e.Detail = estado
	s.audit.Record(e)
	return nil
}
