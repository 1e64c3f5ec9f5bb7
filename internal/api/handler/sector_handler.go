package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type SectorHandler struct {
	svc ports.SectorService
}

func NewSectorHandler(svc ports.SectorService) *SectorHandler {
	return &SectorHandler{svc: svc}
}

type sectorRequest struct {
	Nombre string `json:"nombre" validate:"required"`
	Estado string `json:"estado"`
}

// @Summary      List sectors
// @Tags         sectores
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /sectores [get]
func (h *SectorHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", list)
}

// @Summary      Beneficiaries per sector
// @Tags         sectores
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /sectores/beneficiarios [get]
func (h *SectorHandler) BeneficiariasPorSector(c echo.Context) error {
	rows, err := h.svc.BeneficiariasPorSector(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", rows)
}

// @Summary      Get a sector
// @Tags         sectores
// @Produce      json
// @Param        id   path      int  true  "Sector ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /sectores/{id} [get]
func (h *SectorHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", s)
}

// @Summary      Create a sector
// @Tags         sectores
// @Accept       json
// @Produce      json
// @Param        body  body      sectorRequest  true  "Sector"
// @Success      201   {object}  Envelope
// @Failure      409   {object}  Envelope
// @Router       /sectores [post]
func (h *SectorHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req sectorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), actor, ports.SectorInput(req)); err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Sector creado exitosamente", nil)
}

// @Summary      Update a sector
// @Tags         sectores
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Sector ID"
// @Param        body  body      sectorRequest  true  "Sector"
// @Success      200   {object}  Envelope
// @Router       /sectores/{id} [put]
func (h *SectorHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req sectorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), actor, id, ports.SectorInput(req)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Sector actualizado exitosamente", nil)
}

// @Summary      Delete a sector
// @Tags         sectores
// @Produce      json
// @Param        id   path      int  true  "Sector ID"
// @Success      200  {object}  Envelope
// @Router       /sectores/{id} [delete]
func (h *SectorHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Sector eliminado exitosamente", nil)
}

// @Summary      Change sector status
// @Tags         sectores
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Sector ID"
// @Param        body  body      statusRequest  true  "Nuevo estado"
// @Success      200   {object}  Envelope
// @Router       /sectores/{id}/estado [patch]
func (h *SectorHandler) SetStatus(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.SetStatus(c.Request().Context(), actor, id, req.Estado); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Estado de sector actualizado exitosamente", nil)
}
