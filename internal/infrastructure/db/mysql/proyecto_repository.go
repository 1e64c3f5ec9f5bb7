package mysql

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type ProyectoRepository struct {
	exec *Executor
}

func NewProyectoRepository(exec *Executor) *ProyectoRepository {
	return &ProyectoRepository{exec: exec}
}

func (r *ProyectoRepository) List(ctx context.Context) ([]domain.Proyecto, error) {
	recs, err := r.exec.Query(ctx, "obtener_proyectos")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Proyecto, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toProyecto(rec))
	}
	return out, nil
}

func (r *ProyectoRepository) Get(ctx context.Context, id int64) (*domain.Proyecto, error) {
	recs, err := r.exec.Query(ctx, "obtener_proyecto_byid", id)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrProyectoNotFound
	}
	p := toProyecto(recs[0])
	return &p, nil
}

// Create inserts the project and returns the highest id from the listing,
// since crear_proyecto does not report the generated key.
func (r *ProyectoRepository) Create(ctx context.Context, in ports.ProyectoInput) (int64, error) {
	err := r.exec.Exec(ctx, "crear_proyecto",
		in.Nombre, in.Descripcion, in.TipoProyecto, in.FechaInicio, in.FechaFin,
		in.PlanteamientoProblema, in.ObjetivosGenerales, in.ObjetivosEspecificos, in.Alcance,
		in.PoblacionMeta, in.RecursosMateriales, in.RecursosEconomicos, in.Observaciones,
	)
	if err != nil {
		return 0, err
	}
	recs, err := r.exec.Query(ctx, "obtener_proyectos")
	if err != nil {
		return 0, err
	}
	return maxID(recs, "id_proyecto"), nil
}

func (r *ProyectoRepository) Update(ctx context.Context, id int64, in ports.ProyectoInput) error {
	return r.exec.Exec(ctx, "actualizar_proyecto",
		id, in.Nombre, in.Descripcion, in.TipoProyecto, in.FechaInicio, in.FechaFin,
		in.PlanteamientoProblema, in.ObjetivosGenerales, in.ObjetivosEspecificos, in.Alcance,
		in.PoblacionMeta, in.RecursosMateriales, in.RecursosEconomicos, in.Observaciones, in.Estado,
	)
}

func (r *ProyectoRepository) Delete(ctx context.Context, id int64) error {
	return r.exec.Exec(ctx, "eliminar_proyecto", id)
}

func (r *ProyectoRepository) SetStatus(ctx context.Context, id int64, estado string) error {
	return r.exec.Exec(ctx, "cambiar_estado_proyecto", id, estado)
}

func toProyecto(rec record) domain.Proyecto {
	return domain.Proyecto{
		ID:                    rec.Int64("id_proyecto"),
		Nombre:                rec.String("nombre"),
		Descripcion:           rec.String("descripcion"),
		TipoProyecto:          rec.String("tipo_proyecto"),
		FechaInicio:           rec.String("fecha_inicio"),
		FechaFin:              rec.String("fecha_fin"),
		PlanteamientoProblema: rec.String("planteamiento_problema"),
		ObjetivosGenerales:    rec.String("objetivos_generales"),
		ObjetivosEspecificos:  rec.String("objetivos_especificos"),
		Alcance:               rec.String("alcance"),
		PoblacionMeta:         rec.String("poblacion_meta"),
		RecursosMateriales:    rec.String("recursos_materiales"),
		RecursosEconomicos:    rec.String("recursos_economicos"),
		Observaciones:         rec.String("observaciones"),
		Estado:                rec.String("estado"),
	}
}

func maxID(recs records, col string) int64 {
	var max int64
	for _, rec := range recs {
		if id := rec.Int64(col); id > max {
			max = id
		}
	}
	return max
}
