package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

func (c *Client) Proyecto(ctx context.Context, id int64) (*domain.Proyecto, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/proyectos/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Proyecto](env)
}

func (c *Client) UpdateProyecto(ctx context.Context, p *domain.Proyecto) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/proyectos/%d", p.ID), p)
	return err
}

func (c *Client) Capacitacion(ctx context.Context, id int64) (*domain.Capacitacion, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/capacitaciones/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[*domain.Capacitacion](env)
}

func (c *Client) UpdateCapacitacion(ctx context.Context, t *domain.Capacitacion) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/capacitaciones/%d", t.ID), t)
	return err
}
