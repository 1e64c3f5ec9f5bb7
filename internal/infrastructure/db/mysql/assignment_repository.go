package mysql

import (
	"context"
	"fmt"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type relationProcs struct {
	assign string
	remove string
	linked string
}

// assignmentProcs names the procedures per owner and relation.
var assignmentProcs = map[domain.OwnerKind]map[domain.RelationKind]relationProcs{
	domain.OwnerProyecto: {
		domain.RelationBeneficiarios: {"asignar_beneficiario_proyecto", "remover_beneficiario_proyecto", "obtener_beneficiarios_proyecto"},
		domain.RelationSectores:      {"asignar_sector_proyecto", "remover_sector_proyecto", "obtener_sectores_proyecto_byid"},
	},
	domain.OwnerCapacitacion: {
		domain.RelationBeneficiarios: {"asignar_beneficiario_capacitacion", "remover_beneficiario_capacitacion", "obtener_beneficiarios_capacitacion"},
		domain.RelationSectores:      {"asignar_sector_capacitacion", "remover_sector_capacitacion", "obtener_sectores_capacitacion_byid"},
	},
}

var (
	detailProcs = map[domain.OwnerKind]string{
		domain.OwnerProyecto:     "obtener_beneficiario_proyecto_byid",
		domain.OwnerCapacitacion: "obtener_beneficiario_capacitacion_byid",
	}
	countProcs = map[domain.OwnerKind]string{
		domain.OwnerProyecto:     "obtener_cantidad_beneficiarios_proyectos",
		domain.OwnerCapacitacion: "obtener_cantidad_beneficiarios_capacitacion",
	}
)

type AssignmentRepository struct {
	exec *Executor
}

func NewAssignmentRepository(exec *Executor) *AssignmentRepository {
	return &AssignmentRepository{exec: exec}
}

func (r *AssignmentRepository) Assign(ctx context.Context, a domain.Assignment) error {
	procs, err := lookupProcs(a.Owner, a.Relation)
	if err != nil {
		return err
	}
	return r.exec.Exec(ctx, procs.assign, a.OwnerID, a.RelatedID)
}

func (r *AssignmentRepository) Remove(ctx context.Context, a domain.Assignment) error {
	procs, err := lookupProcs(a.Owner, a.Relation)
	if err != nil {
		return err
	}
	return r.exec.Exec(ctx, procs.remove, a.OwnerID, a.RelatedID)
}

func (r *AssignmentRepository) Linked(ctx context.Context, owner domain.OwnerKind, ownerID int64, relation domain.RelationKind) ([]domain.Row, error) {
	procs, err := lookupProcs(owner, relation)
	if err != nil {
		return nil, err
	}
	recs, err := r.exec.Query(ctx, procs.linked, ownerID)
	if err != nil {
		return nil, err
	}
	return recs.rows(), nil
}

func (r *AssignmentRepository) LinkedDetail(ctx context.Context, owner domain.OwnerKind, ownerID int64) ([]domain.Row, error) {
	proc, ok := detailProcs[owner]
	if !ok {
		return nil, fmt.Errorf("no detail procedure for %s", owner)
	}
	recs, err := r.exec.Query(ctx, proc, ownerID)
	if err != nil {
		return nil, err
	}
	return recs.rows(), nil
}

func (r *AssignmentRepository) CountBeneficiarias(ctx context.Context, owner domain.OwnerKind, ownerID int64) (int64, error) {
	proc, ok := countProcs[owner]
	if !ok {
		return 0, fmt.Errorf("no count procedure for %s", owner)
	}
	recs, err := r.exec.Query(ctx, proc, ownerID)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}
	return recs[0].Int64("cantidad_beneficiarios"), nil
}

func lookupProcs(owner domain.OwnerKind, relation domain.RelationKind) (relationProcs, error) {
	procs, ok := assignmentProcs[owner][relation]
	if !ok {
		return relationProcs{}, fmt.Errorf("no procedures for %s/%s", owner, relation)
	}
	return procs, nil
}
