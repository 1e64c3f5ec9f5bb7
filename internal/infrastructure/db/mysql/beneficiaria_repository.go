package mysql

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type BeneficiariaRepository struct {
	exec *Executor
}

func NewBeneficiariaRepository(exec *Executor) *BeneficiariaRepository {
	return &BeneficiariaRepository{exec: exec}
}

func (r *BeneficiariaRepository) List(ctx context.Context) ([]domain.Beneficiaria, error) {
	return r.list(ctx, "obtener_beneficiarios")
}

func (r *BeneficiariaRepository) ListRecent(ctx context.Context) ([]domain.Beneficiaria, error) {
	return r.list(ctx, "obtener_beneficiarios_recientes")
}

func (r *BeneficiariaRepository) Get(ctx context.Context, id int64) (*domain.Beneficiaria, error) {
	recs, err := r.exec.Query(ctx, "obtener_beneficiario_byid", id)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrBeneficiariaNotFound
	}
	b := toBeneficiaria(recs[0])
	return &b, nil
}

func (r *BeneficiariaRepository) Create(ctx context.Context, in ports.BeneficiariaInput) error {
	return r.exec.Exec(ctx, "crear_beneficiario",
		in.SectorID, in.Nombre, in.DPI, in.DPIFront, in.DPIBack, in.FechaNacimiento, in.Edad,
		in.Direccion, in.Telefono, in.Correo, in.HabitantesDomicilio, in.Inmuebles,
	)
}

func (r *BeneficiariaRepository) Update(ctx context.Context, id int64, in ports.BeneficiariaInput) error {
	return r.exec.Exec(ctx, "actualizar_beneficiario",
		id, in.SectorID, in.Nombre, in.DPI, in.DPIFront, in.DPIBack, in.FechaNacimiento, in.Edad,
		in.Direccion, in.Telefono, in.Correo, in.HabitantesDomicilio, in.Inmuebles, in.Estado,
	)
}

func (r *BeneficiariaRepository) Delete(ctx context.Context, id int64) error {
	return r.exec.Exec(ctx, "eliminar_beneficiario", id)
}

func (r *BeneficiariaRepository) SetStatus(ctx context.Context, id int64, estado string) error {
	return r.exec.Exec(ctx, "cambiar_estado_beneficiario", id, estado)
}

func (r *BeneficiariaRepository) list(ctx context.Context, proc string) ([]domain.Beneficiaria, error) {
	recs, err := r.exec.Query(ctx, proc)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Beneficiaria, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toBeneficiaria(rec))
	}
	return out, nil
}

func toBeneficiaria(rec record) domain.Beneficiaria {
	return domain.Beneficiaria{
		ID:                  rec.Int64("id_beneficiario"),
		SectorID:            rec.Int64("id_sector"),
		Sector:              rec.String("sector"),
		Nombre:              rec.String("nombre"),
		DPI:                 rec.String("dpi"),
		DPIFront:            rec.String("dpi_frente"),
		DPIBack:             rec.String("dpi_reverso"),
		FechaNacimiento:     rec.String("fecha_nacimiento"),
		Edad:                rec.Int("edad"),
		Direccion:           rec.String("direccion"),
		Telefono:            rec.String("telefono"),
		Correo:              rec.String("correo"),
		HabitantesDomicilio: rec.Int("habitantes_domicilio"),
		Inmuebles:           rec.String("inmuebles"),
		Estado:              rec.String("estado"),
		FechaRegistro:       rec.String("fecha_registro"),
	}
}
