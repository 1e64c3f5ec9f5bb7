package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type stubAssignmentService struct {
	ports.AssignmentService

	assigned []domain.Assignment
	removed  []domain.Assignment
	count    int64
}

func (s *stubAssignmentService) Assign(_ context.Context, _ *domain.User, a domain.Assignment) error {
	s.assigned = append(s.assigned, a)
	return nil
}

func (s *stubAssignmentService) Remove(_ context.Context, _ *domain.User, a domain.Assignment) error {
	s.removed = append(s.removed, a)
	return nil
}

func (s *stubAssignmentService) CountBeneficiarias(context.Context, domain.OwnerKind, int64) (int64, error) {
	return s.count, nil
}

var directoraUser = &domain.User{ID: 1, Username: "directora", Role: domain.RoleDirectora}

func TestAssignmentHandler_AssignSector(t *testing.T) {
	e := newTestEcho()
	stub := &stubAssignmentService{}
	h := NewAssignmentHandler(stub, domain.OwnerCapacitacion)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("id", "sectorId")
	c.SetParamValues("9", "4")
	c.Set("user", directoraUser)

	if err := h.Assign(domain.RelationSectores)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := domain.Assignment{Owner: domain.OwnerCapacitacion, OwnerID: 9, Relation: domain.RelationSectores, RelatedID: 4}
	if len(stub.assigned) != 1 || stub.assigned[0] != want {
		t.Fatalf("unexpected assignments: %+v", stub.assigned)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAssignmentHandler_RemoveBeneficiario(t *testing.T) {
	e := newTestEcho()
	stub := &stubAssignmentService{}
	h := NewAssignmentHandler(stub, domain.OwnerProyecto)

	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id", "beneficiarioId")
	c.SetParamValues("2", "11")
	c.Set("user", directoraUser)

	if err := h.Remove(domain.RelationBeneficiarios)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := domain.Assignment{Owner: domain.OwnerProyecto, OwnerID: 2, Relation: domain.RelationBeneficiarios, RelatedID: 11}
	if len(stub.removed) != 1 || stub.removed[0] != want {
		t.Fatalf("unexpected removals: %+v", stub.removed)
	}
}

func TestAssignmentHandler_BadRelatedID(t *testing.T) {
	e := newTestEcho()
	stub := &stubAssignmentService{}
	h := NewAssignmentHandler(stub, domain.OwnerProyecto)

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id", "beneficiarioId")
	c.SetParamValues("2", "abc")
	c.Set("user", directoraUser)

	if err := h.Assign(domain.RelationBeneficiarios)(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(stub.assigned) != 0 {
		t.Fatalf("service must not be called")
	}
}

func TestAssignmentHandler_Count(t *testing.T) {
	e := newTestEcho()
	h := NewAssignmentHandler(&stubAssignmentService{count: 12}, domain.OwnerProyecto)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.Count(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp struct {
		Data countResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.Cantidad != 12 {
		t.Fatalf("expected 12, got %d", resp.Data.Cantidad)
	}
}
