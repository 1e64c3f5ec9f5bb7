package mysql

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type SectorRepository struct {
	exec *Executor
}

func NewSectorRepository(exec *Executor) *SectorRepository {
	return &SectorRepository{exec: exec}
}

func (r *SectorRepository) List(ctx context.Context) ([]domain.Sector, error) {
	recs, err := r.exec.Query(ctx, "obtener_sectores")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Sector, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toSector(rec))
	}
	return out, nil
}

func (r *SectorRepository) Get(ctx context.Context, id int64) (*domain.Sector, error) {
	recs, err := r.exec.Query(ctx, "obtener_sector_byid", id)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrSectorNotFound
	}
	s := toSector(recs[0])
	return &s, nil
}

func (r *SectorRepository) Create(ctx context.Context, in ports.SectorInput) error {
	return r.exec.Exec(ctx, "crear_sector", in.Nombre)
}

func (r *SectorRepository) Update(ctx context.Context, id int64, in ports.SectorInput) error {
	return r.exec.Exec(ctx, "actualizar_sector", id, in.Nombre, in.Estado)
}

func (r *SectorRepository) Delete(ctx context.Context, id int64) error {
	return r.exec.Exec(ctx, "eliminar_sector", id)
}

func (r *SectorRepository) SetStatus(ctx context.Context, id int64, estado string) error {
	return r.exec.Exec(ctx, "cambiar_estado_sector", id, estado)
}

func (r *SectorRepository) BeneficiariasPorSector(ctx context.Context) ([]domain.Row, error) {
	recs, err := r.exec.Query(ctx, "obtener_beneficiarios_por_sector")
	if err != nil {
		return nil, err
	}
	return recs.rows(), nil
}

func toSector(rec record) domain.Sector {
	return domain.Sector{
		ID:     rec.Int64("id_sector"),
		Nombre: rec.String("nombre"),
		Estado: rec.String("estado"),
	}
}
