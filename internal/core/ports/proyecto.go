package ports

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// ProyectoInput is the scalar payload of crear_proyecto and actualizar_proyecto.
// Estado is ignored on create.
type ProyectoInput struct {
	Nombre                string
	Descripcion           string
	TipoProyecto          string
	FechaInicio           string
	FechaFin              string
	PlanteamientoProblema string
	ObjetivosGenerales    string
	ObjetivosEspecificos  string
	Alcance               string
	PoblacionMeta         string
	RecursosMateriales    string
	RecursosEconomicos    string
	Observaciones         string
	Estado                string
}

type ProyectoRepository interface {
	List(ctx context.Context) ([]domain.Proyecto, error)
	Get(ctx context.Context, id int64) (*domain.Proyecto, error)
	// Create returns the id of the new project.
	Create(ctx context.Context, in ProyectoInput) (int64, error)
	Update(ctx context.Context, id int64, in ProyectoInput) error
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, estado string) error
}

type ProyectoService interface {
	List(ctx context.Context) ([]domain.Proyecto, error)
	Get(ctx context.Context, id int64) (*domain.Proyecto, error)
	Create(ctx context.Context, actor *domain.User, in ProyectoInput) (int64, error)
	Update(ctx context.Context, actor *domain.User, id int64, in ProyectoInput) error
	Delete(ctx context.Context, actor *domain.User, id int64) error
	SetStatus(ctx context.Context, actor *domain.User, id int64, estado string) error
}
