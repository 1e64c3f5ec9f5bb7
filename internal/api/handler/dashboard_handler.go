package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type DashboardHandler struct {
	svc ports.DashboardService
}

func NewDashboardHandler(svc ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats returns the headline counters. A failing store yields zeros.
//
// @Summary      Dashboard counters
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /dashboard/estadisticas [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	return respond(c, http.StatusOK, "", h.svc.Stats(c.Request().Context()))
}

// @Summary      Projects by status
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /dashboard/proyectos-estado [get]
func (h *DashboardHandler) ProyectosPorEstado(c echo.Context) error {
	rows, err := h.svc.ProyectosPorEstado(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", rows)
}

// @Summary      Trainings by status
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /dashboard/capacitaciones-estado [get]
func (h *DashboardHandler) CapacitacionesPorEstado(c echo.Context) error {
	rows, err := h.svc.CapacitacionesPorEstado(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", rows)
}

// @Summary      Recent activity
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  Envelope
// @Router       /dashboard/actividad-reciente [get]
func (h *DashboardHandler) ActividadReciente(c echo.Context) error {
	rows, err := h.svc.ActividadReciente(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", rows)
}
