package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type DashboardService struct {
	repo ports.DashboardRepository
	log  zerolog.Logger
}

func NewDashboardService(repo ports.DashboardRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, log: log}
}

// Stats never fails: the dashboard renders zeros when the aggregate is unavailable.
func (s *DashboardService) Stats(ctx context.Context) domain.DashboardStats {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("dashboard stats unavailable, returning zeros")
		return domain.DashboardStats{}
	}
	return stats
}

func (s *DashboardService) ProyectosPorEstado(ctx context.Context) ([]domain.Row, error) {
	return s.repo.ProyectosPorEstado(ctx)
}

func (s *DashboardService) CapacitacionesPorEstado(ctx context.Context) ([]domain.Row, error) {
	return s.repo.CapacitacionesPorEstado(ctx)
}

func (s *DashboardService) ActividadReciente(ctx context.Context) ([]domain.Row, error) {
	return s.repo.ActividadReciente(ctx)
}
