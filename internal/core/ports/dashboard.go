package ports

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type DashboardRepository interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
	ProyectosPorEstado(ctx context.Context) ([]domain.Row, error)
	CapacitacionesPorEstado(ctx context.Context) ([]domain.Row, error)
	ActividadReciente(ctx context.Context) ([]domain.Row, error)
}

type DashboardService interface {
	Stats(ctx context.Context) domain.DashboardStats
	ProyectosPorEstado(ctx context.Context) ([]domain.Row, error)
	CapacitacionesPorEstado(ctx context.Context) ([]domain.Row, error)
	ActividadReciente(ctx context.Context) ([]domain.Row, error)
}
