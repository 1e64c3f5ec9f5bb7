package mysql

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type CapacitacionRepository struct {
	exec *Executor
}

func NewCapacitacionRepository(exec *Executor) *CapacitacionRepository {
	return &CapacitacionRepository{exec: exec}
}

func (r *CapacitacionRepository) List(ctx context.Context) ([]domain.Capacitacion, error) {
	recs, err := r.exec.Query(ctx, "obtener_capacitaciones")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Capacitacion, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toCapacitacion(rec))
	}
	return out, nil
}

func (r *CapacitacionRepository) Get(ctx context.Context, id int64) (*domain.Capacitacion, error) {
	recs, err := r.exec.Query(ctx, "obtener_capacitacion_byid", id)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrCapacitacionNotFound
	}
	c := toCapacitacion(recs[0])
	return &c, nil
}

func (r *CapacitacionRepository) Create(ctx context.Context, in ports.CapacitacionInput) (int64, error) {
	err := r.exec.Exec(ctx, "crear_capacitacion",
		in.Nombre, in.Descripcion, in.TipoCapacitacion, in.Alcance, in.PoblacionMeta,
		in.RecursosMateriales, in.RecursosEconomicos, in.FechaInicio, in.FechaFin, in.Observaciones,
	)
	if err != nil {
		return 0, err
	}
	recs, err := r.exec.Query(ctx, "obtener_capacitaciones")
	if err != nil {
		return 0, err
	}
	return maxID(recs, "id_capacitacion"), nil
}

func (r *CapacitacionRepository) Update(ctx context.Context, id int64, in ports.CapacitacionInput) error {
	return r.exec.Exec(ctx, "actualizar_capacitacion",
		id, in.Nombre, in.Descripcion, in.TipoCapacitacion, in.Alcance, in.PoblacionMeta,
		in.RecursosMateriales, in.RecursosEconomicos, in.FechaInicio, in.FechaFin, in.Observaciones, in.Estado,
	)
}

func (r *CapacitacionRepository) Delete(ctx context.Context, id int64) error {
	return r.exec.Exec(ctx, "eliminar_capacitacion", id)
}

func (r *CapacitacionRepository) SetStatus(ctx context.Context, id int64, estado string) error {
	return r.exec.Exec(ctx, "cambiar_estado_capacitacion", id, estado)
}

func toCapacitacion(rec record) domain.Capacitacion {
	return domain.Capacitacion{
		ID:                 rec.Int64("id_capacitacion"),
		Nombre:             rec.String("nombre"),
		Descripcion:        rec.String("descripcion"),
		TipoCapacitacion:   rec.String("tipo_capacitacion"),
		Alcance:            rec.String("alcance"),
		PoblacionMeta:      rec.String("poblacion_meta"),
		RecursosMateriales: rec.String("recursos_materiales"),
		RecursosEconomicos: rec.String("recursos_economicos"),
		FechaInicio:        rec.String("fecha_inicio"),
		FechaFin:           rec.String("fecha_fin"),
		Observaciones:      rec.String("observaciones"),
		Estado:             rec.String("estado"),
	}
}
