package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

func TestNewValidator_UsuarioTag(t *testing.T) {
	v := NewValidator()

	ok := registerRequest{ID: 1, RoleID: 2, Username: "ana_2", Password: "secreto", Name: "Ana"}
	if err := v.Validate(ok); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	bad := ok
	bad.Username = "ana lopez"
	err := v.Validate(bad)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "letras, números y guiones bajos") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestNewValidator_FieldNamesFromJSONTags(t *testing.T) {
	err := NewValidator().Validate(registerRequest{ID: 1, RoleID: 2, Username: "ana", Password: "123"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"contrasena debe tener al menos 6 caracteres", "nombre es requerido"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}
