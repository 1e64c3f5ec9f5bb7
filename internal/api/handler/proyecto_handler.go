package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type ProyectoHandler struct {
	svc ports.ProyectoService
}

func NewProyectoHandler(svc ports.ProyectoService) *ProyectoHandler {
	return &ProyectoHandler{svc: svc}
}

type proyectoRequest struct {
	Nombre                string `json:"nombre" validate:"required"`
	Descripcion           string `json:"descripcion"`
	TipoProyecto          string `json:"tipo_proyecto"`
	FechaInicio           string `json:"fecha_inicio"`
	FechaFin              string `json:"fecha_fin"`
	PlanteamientoProblema string `json:"planteamiento_problema"`
	ObjetivosGenerales    string `json:"objetivos_generales"`
	ObjetivosEspecificos  string `json:"objetivos_especificos"`
	Alcance               string `json:"alcance"`
	PoblacionMeta         string `json:"poblacion_meta"`
	RecursosMateriales    string `json:"recursos_materiales"`
	RecursosEconomicos    string `json:"recursos_economicos"`
	Observaciones         string `json:"observaciones"`
	Estado                string `json:"estado"`
}

func (r proyectoRequest) input() ports.ProyectoInput {
	return ports.ProyectoInput(r)
}

type proyectoCreated struct {
	ID int64 `json:"id_proyecto"`
}

// List returns every project.
//
// @Summary      List projects
// @Tags         proyectos
// @Produce      json
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /proyectos [get]
func (h *ProyectoHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", list)
}

// Get returns one project.
//
// @Summary      Get a project
// @Tags         proyectos
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /proyectos/{id} [get]
func (h *ProyectoHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", p)
}

// Create creates a project and returns its id.
//
// @Summary      Create a project
// @Tags         proyectos
// @Accept       json
// @Produce      json
// @Param        body  body      proyectoRequest  true  "Proyecto"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Router       /proyectos [post]
func (h *ProyectoHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	var req proyectoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	id, err := h.svc.Create(c.Request().Context(), actor, req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Proyecto creado exitosamente", proyectoCreated{ID: id})
}

// Update replaces the scalar fields of a project.
//
// @Summary      Update a project
// @Tags         proyectos
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Project ID"
// @Param        body  body      proyectoRequest  true  "Proyecto"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Router       /proyectos/{id} [put]
func (h *ProyectoHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req proyectoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.svc.Update(c.Request().Context(), actor, id, req.input()); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Proyecto actualizado exitosamente", nil)
}

// Delete removes a project.
//
// @Summary      Delete a project
// @Tags         proyectos
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /proyectos/{id} [delete]
func (h *ProyectoHandler) Delete(c echo.Context) error {
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
	return respond(c, http.StatusOK, "Proyecto eliminado exitosamente", nil)
}

// SetStatus changes a project's status.
//
// @Summary      Change project status
// @Tags         proyectos
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Project ID"
// @Param        body  body      statusRequest  true  "Nuevo estado"
// @Success      200   {object}  Envelope
// @Router       /proyectos/{id}/estado [patch]
func (h *ProyectoHandler) SetStatus(c echo.Context) error {
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
	return respond(c, http.StatusOK, "Estado de proyecto actualizado exitosamente", nil)
}
