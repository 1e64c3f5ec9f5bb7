package ports

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type SectorInput struct {
	Nombre string
	Estado string
}

type SectorRepository interface {
	List(ctx context.Context) ([]domain.Sector, error)
	Get(ctx context.Context, id int64) (*domain.Sector, error)
	Create(ctx context.Context, in SectorInput) error
	Update(ctx context.Context, id int64, in SectorInput) error
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, estado string) error
	BeneficiariasPorSector(ctx context.Context) ([]domain.Row, error)
}

type SectorService interface {
	List(ctx context.Context) ([]domain.Sector, error)
	Get(ctx context.Context, id int64) (*domain.Sector, error)
	Create(ctx context.Context, actor *domain.User, in SectorInput) error
	Update(ctx context.Context, actor *domain.User, id int64, in SectorInput) error
	Delete(ctx context.Context, actor *domain.User, id int64) error
	SetStatus(ctx context.Context, actor *domain.User, id int64, estado string) error
	BeneficiariasPorSector(ctx context.Context) ([]domain.Row, error)
}
