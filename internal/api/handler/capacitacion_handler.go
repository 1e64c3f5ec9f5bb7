package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type CapacitacionHandler struct {
	svc ports.CapacitacionService
}

func NewCapacitacionHandler(svc ports.CapacitacionService) *CapacitacionHandler {
	return &CapacitacionHandler{svc: svc}
}

type capacitacionRequest struct {
	Nombre             string `json:"nombre" validate:"required"`
	Descripcion        string `json:"descripcion"`
	TipoCapacitacion   string `json:"tipo_capacitacion"`
	Alcance            string `json:"alcance"`
	PoblacionMeta      string `json:"poblacion_meta"`
	RecursosMateriales string `json:"recursos_materiales"`
	RecursosEconomicos string `json:"recursos_economicos"`
	FechaInicio        string `json:"fecha_inicio"`
	FechaFin           string `json:"fecha_fin"`
	Observaciones      string `json:"observaciones"`
	Estado             string `json:"estado"`
}

type capacitacionCreated struct {
	ID int64 `json:"id_capacitacion"`
}

// List returns every training.
//
// @Summary      List trainings
// @Tags         capacitaciones
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /capacitaciones [get]
func (h *CapacitacionHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", list)
}

// @Summary      Get a training
// @Tags         capacitaciones
// @Produce      json
// @Param        id   path      int  true  "Training ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /capacitaciones/{id} [get]
func (h *CapacitacionHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", t)
}

// @Summary      Create a training
// @Tags         capacitaciones
// @Accept       json
// @Produce      json
// @Param        body  body      capacitacionRequest  true  "Capacitación"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Router       /capacitaciones [post]
func (h *CapacitacionHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req capacitacionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id, err := h.svc.Create(c.Request().Context(), actor, ports.CapacitacionInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Capacitación creada exitosamente", capacitacionCreated{ID: id})
}

// @Summary      Update a training
// @Tags         capacitaciones
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Training ID"
// @Param        body  body      capacitacionRequest  true  "Capacitación"
// @Success      200   {object}  Envelope
// @Router       /capacitaciones/{id} [put]
func (h *CapacitacionHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req capacitacionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), actor, id, ports.CapacitacionInput(req)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Capacitación actualizada exitosamente", nil)
}

// @Summary      Delete a training
// @Tags         capacitaciones
// @Produce      json
// @Param        id   path      int  true  "Training ID"
// @Success      200  {object}  Envelope
// @Router       /capacitaciones/{id} [delete]
func (h *CapacitacionHandler) Delete(c echo.Context) error {
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
	return respond(c, http.StatusOK, "Capacitación eliminada exitosamente", nil)
}

// @Summary      Change training status
// @Tags         capacitaciones
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Training ID"
// @Param        body  body      statusRequest  true  "Nuevo estado"
// @Success      200   {object}  Envelope
// @Router       /capacitaciones/{id}/estado [patch]
func (h *CapacitacionHandler) SetStatus(c echo.Context) error {
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
	return respond(c, http.StatusOK, "Estado de capacitación actualizado exitosamente", nil)
}
