package mysql

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type DashboardRepository struct {
	exec *Executor
}

func NewDashboardRepository(exec *Executor) *DashboardRepository {
	return &DashboardRepository{exec: exec}
}

// Stats reads the first row of obtener_estadisticas_dashboard; missing
// columns count as zero.
func (r *DashboardRepository) Stats(ctx context.Context) (domain.DashboardStats, error) {
	recs, err := r.exec.Query(ctx, "obtener_estadisticas_dashboard")
	if err != nil {
		return domain.DashboardStats{}, err
	}
	if len(recs) == 0 {
		return domain.DashboardStats{}, nil
	}
	rec := recs[0]
	return domain.DashboardStats{
		TotalBeneficiariasActivas:      rec.Int64("total_beneficiarios_activos"),
		TotalBeneficiariasInactivas:    rec.Int64("total_beneficiarios_inactivos"),
		TotalProyectosCompletados:      rec.Int64("total_proyectos_completados"),
		TotalProyectosEnProceso:        rec.Int64("total_proyectos_en_proceso"),
		TotalCapacitacionesCompletadas: rec.Int64("total_capacitaciones_completadas"),
		TotalCapacitacionesEnProceso:   rec.Int64("total_capacitaciones_en_proceso"),
		TotalSectores:                  rec.Int64("total_sectores"),
	}, nil
}

func (r *DashboardRepository) ProyectosPorEstado(ctx context.Context) ([]domain.Row, error) {
	return r.rows(ctx, "obtener_proyectos_por_estado")
}

func (r *DashboardRepository) CapacitacionesPorEstado(ctx context.Context) ([]domain.Row, error) {
	return r.rows(ctx, "obtener_capacitaciones_por_estado")
}

func (r *DashboardRepository) ActividadReciente(ctx context.Context) ([]domain.Row, error) {
	return r.rows(ctx, "obtener_actividad_reciente")
}

func (r *DashboardRepository) rows(ctx context.Context, proc string) ([]domain.Row, error) {
	recs, err := r.exec.Query(ctx, proc)
	if err != nil {
		return nil, err
	}
	return recs.rows(), nil
}
