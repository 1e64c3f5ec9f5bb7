package ports

import (
	"context"
	"io"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// BeneficiariaInput is the positional payload of crear_beneficiario and
// actualizar_beneficiario. DPIFront and DPIBack are object keys.
type BeneficiariaInput struct {
	SectorID            int64
	Nombre              string
	DPI                 string
	DPIFront            string
	DPIBack             string
	FechaNacimiento     string
	Edad                int
	Direccion           string
	Telefono            string
	Correo              string
	HabitantesDomicilio int
	Inmuebles           string
	Estado              string
}

// ImageUpload is an identity-document image received with a create or update.
type ImageUpload struct {
	Side        domain.ImageSide
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type BeneficiariaRepository interface {
	List(ctx context.Context) ([]domain.Beneficiaria, error)
	ListRecent(ctx context.Context) ([]domain.Beneficiaria, error)
	Get(ctx context.Context, id int64) (*domain.Beneficiaria, error)
	Create(ctx context.Context, in BeneficiariaInput) error
	Update(ctx context.Context, id int64, in BeneficiariaInput) error
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, estado string) error
}

type BeneficiariaService interface {
	List(ctx context.Context) ([]domain.Beneficiaria, error)
	ListRecent(ctx context.Context) ([]domain.Beneficiaria, error)
	Get(ctx context.Context, id int64) (*domain.Beneficiaria, error)
	Create(ctx context.Context, actor *domain.User, in BeneficiariaInput, images []ImageUpload) error
	// Update ignores in.DPIFront/in.DPIBack; stored keys change only through images.
	Update(ctx context.Context, actor *domain.User, id int64, in BeneficiariaInput, images []ImageUpload) error
	Delete(ctx context.Context, actor *domain.User, id int64) error
	SetStatus(ctx context.Context, actor *domain.User, id int64, estado string) error
	Image(ctx context.Context, id int64, side domain.ImageSide) (*Document, error)
}
