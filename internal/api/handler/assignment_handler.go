package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/api/metrics"
	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

// AssignmentHandler serves the relation endpoints of one owner kind
// (projects or trainings).
type AssignmentHandler struct {
	svc   ports.AssignmentService
	owner domain.OwnerKind
}

func NewAssignmentHandler(svc ports.AssignmentService, owner domain.OwnerKind) *AssignmentHandler {
	return &AssignmentHandler{svc: svc, owner: owner}
}

type countResponse struct {
	Cantidad int64 `json:"cantidad"`
}

// relatedParam is the path parameter naming the related id of a relation.
func relatedParam(relation domain.RelationKind) string {
	if relation == domain.RelationSectores {
		return "sectorId"
	}
	return "beneficiarioId"
}

func relationLabel(relation domain.RelationKind) string {
	if relation == domain.RelationSectores {
		return "Sector"
	}
	return "Beneficiario"
}

// Linked lists the rows currently linked to the owner for relation.
//
// @Summary      Linked beneficiaries or sectors
// @Tags         asignaciones
// @Produce      json
// @Param        id   path      int  true  "Owner ID"
// @Success      200  {object}  Envelope
// @Router       /proyectos/{id}/beneficiarios [get]
// @Router       /proyectos/{id}/sectores [get]
// @Router       /capacitaciones/{id}/beneficiarios [get]
// @Router       /capacitaciones/{id}/sectores [get]
func (h *AssignmentHandler) Linked(relation domain.RelationKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		rows, err := h.svc.Linked(c.Request().Context(), h.owner, id, relation)
		if err != nil {
			return err
		}
		return respond(c, http.StatusOK, "", rows)
	}
}

// Detail lists linked beneficiaries with their full records.
//
// @Summary      Linked beneficiaries with details
// @Tags         asignaciones
// @Produce      json
// @Param        id   path      int  true  "Owner ID"
// @Success      200  {object}  Envelope
// @Router       /proyectos/{id}/beneficiarios-detalle [get]
// @Router       /capacitaciones/{id}/beneficiarios-detalle [get]
func (h *AssignmentHandler) Detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	rows, err := h.svc.LinkedDetail(c.Request().Context(), h.owner, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", rows)
}

// Count returns the number of linked beneficiaries.
//
// @Summary      Linked beneficiary count
// @Tags         asignaciones
// @Produce      json
// @Param        id   path      int  true  "Owner ID"
// @Success      200  {object}  Envelope
// @Router       /proyectos/{id}/beneficiarios/cantidad [get]
// @Router       /capacitaciones/{id}/beneficiarios/cantidad [get]
func (h *AssignmentHandler) Count(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.svc.CountBeneficiarias(c.Request().Context(), h.owner, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", countResponse{Cantidad: n})
}

// Assign links one related id to the owner. Assigning an existing pair succeeds.
//
// @Summary      Assign a beneficiary or sector
// @Tags         asignaciones
// @Produce      json
// @Param        id              path  int  true  "Owner ID"
// @Param        beneficiarioId  path  int  true  "Beneficiary ID"
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /proyectos/{id}/beneficiarios/{beneficiarioId} [post]
// @Router       /capacitaciones/{id}/beneficiarios/{beneficiarioId} [post]
func (h *AssignmentHandler) Assign(relation domain.RelationKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, a, err := h.assignment(c, relation)
		if err != nil {
			return err
		}
		if err := h.svc.Assign(c.Request().Context(), actor, a); err != nil {
			return err
		}
		metrics.AssignmentChangesTotal.WithLabelValues(string(h.owner), string(relation), "assign").Inc()
		return respond(c, http.StatusOK, fmt.Sprintf("%s asignado %s exitosamente", relationLabel(relation), h.ownerPhrase()), nil)
	}
}

// Remove unlinks one related id from the owner. Removing a missing pair succeeds.
//
// @Summary      Remove a beneficiary or sector
// @Tags         asignaciones
// @Produce      json
// @Param        id        path  int  true  "Owner ID"
// @Param        sectorId  path  int  true  "Sector ID"
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /proyectos/{id}/sectores/{sectorId} [delete]
// @Router       /capacitaciones/{id}/sectores/{sectorId} [delete]
func (h *AssignmentHandler) Remove(relation domain.RelationKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, a, err := h.assignment(c, relation)
		if err != nil {
			return err
		}
		if err := h.svc.Remove(c.Request().Context(), actor, a); err != nil {
			return err
		}
		metrics.AssignmentChangesTotal.WithLabelValues(string(h.owner), string(relation), "remove").Inc()
		return respond(c, http.StatusOK, fmt.Sprintf("%s removido %s exitosamente", relationLabel(relation), h.ownerFromPhrase()), nil)
	}
}

func (h *AssignmentHandler) assignment(c echo.Context, relation domain.RelationKind) (*domain.User, domain.Assignment, error) {
	actor, err := currentUser(c)
	if err != nil {
		return nil, domain.Assignment{}, err
	}
	ownerID, err := pathID(c, "id")
	if err != nil {
		return nil, domain.Assignment{}, err
	}
	relatedID, err := pathID(c, relatedParam(relation))
	if err != nil {
		return nil, domain.Assignment{}, err
	}
	return actor, domain.Assignment{
		Owner:     h.owner,
		OwnerID:   ownerID,
		Relation:  relation,
		RelatedID: relatedID,
	}, nil
}

func (h *AssignmentHandler) ownerPhrase() string {
	if h.owner == domain.OwnerCapacitacion {
		return "a la capacitación"
	}
	return "al proyecto"
}

func (h *AssignmentHandler) ownerFromPhrase() string {
	if h.owner == domain.OwnerCapacitacion {
		return "de la capacitación"
	}
	return "del proyecto"
}
