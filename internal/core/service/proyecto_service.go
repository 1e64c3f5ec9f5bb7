package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type ProyectoService struct {
	repo  ports.ProyectoRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewProyectoService(repo ports.ProyectoRepository, audit ports.AuditRecorder, log zerolog.Logger) *ProyectoService {
	return &ProyectoService{repo: repo, audit: orNop(audit), log: log}
}

func (s *ProyectoService) List(ctx context.Context) ([]domain.Proyecto, error) {
	return s.repo.List(ctx)
}

func (s *ProyectoService) Get(ctx context.Context, id int64) (*domain.Proyecto, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProyectoService) Create(ctx context.Context, actor *domain.User, in ports.ProyectoInput) (int64, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return 0, domain.NewValidationError("El nombre del proyecto es requerido")
	}
	id, err := s.repo.Create(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create proyecto")
		return 0, err
	}
	s.audit.Record(auditEntry(actor, domain.AuditCreated, "proyecto", id))
	s.log.Info().Int64("id", id).Int64("actor_id", actorID(actor)).Msg("proyecto created")
	return id, nil
}

func (s *ProyectoService) Update(ctx context.Context, actor *domain.User, id int64, in ports.ProyectoInput) error {
	if strings.TrimSpace(in.Nombre) == "" {
		return domain.NewValidationError("El nombre del proyecto es requerido")
	}
	if err := s.repo.Update(ctx, id, in); err != nil {
		return err
	}
	s.audit.Record(auditEntry(actor, domain.AuditUpdated, "proyecto", id))
	s.log.Info().Int64("id", id).Int64("actor_id", actorID(actor)).Msg("proyecto updated")
	return nil
}

func (s *ProyectoService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(auditEntry(actor, domain.AuditDeleted, "proyecto", id))
	s.log.Info().Int64("id", id).Int64("actor_id", actorID(actor)).Msg("proyecto deleted")
	return nil
}

func (s *ProyectoService) SetStatus(ctx context.Context, actor *domain.User, id int64, estado string) error {
	if strings.TrimSpace(estado) == "" {
		return domain.NewValidationError("El estado es requerido")
	}
	if err := s.repo.SetStatus(ctx, id, estado); err != nil {
		return err
	}
	e := auditEntry(actor, domain.AuditStatusChange, "proyecto", id)
	e.Detail = estado
	s.audit.Record(e)
	return nil
}
