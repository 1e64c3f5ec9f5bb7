package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

func ownerPath(owner domain.OwnerKind, id int64) (string, error) {
	switch owner {
	case domain.OwnerProyecto:
		return fmt.Sprintf("/proyectos/%d", id), nil
	case domain.OwnerCapacitacion:
		return fmt.Sprintf("/capacitaciones/%d", id), nil
	}
	return "", domain.NewValidationError("tipo de propietario no válido: %s", owner)
}

func assignmentPath(a domain.Assignment) (string, error) {
	if !a.Relation.Valid() {
		return "", domain.NewValidationError("relación no válida: %s", a.Relation)
	}
	p, err := ownerPath(a.Owner, a.OwnerID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%d", p, a.Relation, a.RelatedID), nil
}

func (c *Client) Assign(ctx context.Context, a domain.Assignment) error {
	p, err := assignmentPath(a)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, p, nil)
	return err
}

func (c *Client) Remove(ctx context.Context, a domain.Assignment) error {
	p, err := assignmentPath(a)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodDelete, p, nil)
	return err
}

// Linked returns the rows linked to the owner for relation.
func (c *Client) Linked(ctx context.Context, owner domain.OwnerKind, ownerID int64, relation domain.RelationKind) ([]domain.Row, error) {
	if !relation.Valid() {
		return nil, domain.NewValidationError("relación no válida: %s", relation)
	}
	p, err := ownerPath(owner, ownerID)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodGet, p+"/"+string(relation), nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]domain.Row](env)
}

// LinkedIDs extracts the related ids from Linked. Rows without an id are skipped.
func (c *Client) LinkedIDs(ctx context.Context, owner domain.OwnerKind, ownerID int64, relation domain.RelationKind) ([]int64, error) {
	rows, err := c.Linked(ctx, owner, ownerID, relation)
	if err != nil {
		return nil, err
	}
	col := relation.IDColumn()
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		if id, ok := rowID(row[col]); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func rowID(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		return id, err == nil
	}
	return 0, false
}
