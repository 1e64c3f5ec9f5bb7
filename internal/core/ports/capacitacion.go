package ports

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// CapacitacionInput is the scalar payload of crear_capacitacion and
// actualizar_capacitacion. Estado is ignored on create.
type CapacitacionInput struct {
	Nombre             string
	Descripcion        string
	TipoCapacitacion   string
	Alcance            string
	PoblacionMeta      string
	RecursosMateriales string
	RecursosEconomicos string
	FechaInicio        string
	FechaFin           string
	Observaciones      string
	Estado             string
}

type CapacitacionRepository interface {
	List(ctx context.Context) ([]domain.Capacitacion, error)
	Get(ctx context.Context, id int64) (*domain.Capacitacion, error)
	Create(ctx context.Context, in CapacitacionInput) (int64, error)
	Update(ctx context.Context, id int64, in CapacitacionInput) error
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, estado string) error
}

type CapacitacionService interface {
	List(ctx context.Context) ([]domain.Capacitacion, error)
	Get(ctx context.Context, id int64) (*domain.Capacitacion, error)
	Create(ctx context.Context, actor *domain.User, in CapacitacionInput) (int64, error)
	Update(ctx context.Context, actor *domain.User, id int64, in CapacitacionInput) error
	Delete(ctx context.Context, actor *domain.User, id int64) error
	SetStatus(ctx context.Context, actor *domain.User, id int64, estado string) error
}
