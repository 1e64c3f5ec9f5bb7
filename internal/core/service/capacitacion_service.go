package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type CapacitacionService struct {
	repo  ports.CapacitacionRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewCapacitacionService(repo ports.CapacitacionRepository, audit ports.AuditRecorder, log zerolog.Logger) *CapacitacionService {
	return &CapacitacionService{repo: repo, audit: orNop(audit), log: log}
}

func (s *CapacitacionService) List(ctx context.Context) ([]domain.Capacitacion, error) {
	return s.repo.List(ctx)
}

func (s *CapacitacionService) Get(ctx context.Context, id int64) (*domain.Capacitacion, error) {
	return s.repo.Get(ctx, id)
}

func (s *CapacitacionService) Create(ctx context.Context, actor *domain.User, in ports.CapacitacionInput) (int64, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return 0, domain.NewValidationError("El nombre de la capacitación es requerido")
	}
	id, err := s.repo.Create(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create capacitacion")
		return 0, err
	}
	s.audit.Record(auditEntry(actor, domain.AuditCreated, "capacitacion", id))
	s.log.Info().Int64("id", id).Int64("actor_id", actorID(actor)).Msg("capacitacion created")
	return id, nil
}

func (s *CapacitacionService) Update(ctx context.Context, actor *domain.User, id int64, in ports.CapacitacionInput) error {
	if strings.TrimSpace(in.Nombre) == "" {
		return domain.NewValidationError("El nombre de la capacitación es requerido")
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		return err
	}
	s.audit.Record(auditEntry(actor, domain.AuditUpdated, "capacitacion", id))
	s.log.Info().Int64("id", id).Int64("actor_id", actorID(actor)).Msg("capacitacion updated")
	return nil
}

func (s *CapacitacionService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(auditEntry(actor, domain.AuditDeleted, "capacitacion", id))
	s.log.Info().Int64("id", id).Int64("actor_id", actorID(actor)).Msg("capacitacion deleted")
	return nil
}

func (s *CapacitacionService) SetStatus(ctx context.Context, actor *domain.User, id int64, estado string) error {
	if strings.TrimSpace(estado) == "" {
		return domain.NewValidationError("El estado es requerido")
	}
	if err := s.repo.SetStatus(ctx, id, estado); err != nil {
		return err
	}
	e := auditEntry(actor, domain.AuditStatusChange, "capacitacion", id)
	e.Detail = estado
	s.audit.Record(e)
	return nil
}
