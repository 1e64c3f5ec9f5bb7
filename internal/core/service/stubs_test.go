package service

import (
	"sync"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

type stubRecorder struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *stubRecorder) Record(e domain.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *stubRecorder) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

var (
	directora     = &domain.User{ID: 1, Username: "directora", Role: domain.RoleDirectora}
	administrador = &domain.User{ID: 2, Username: "admin", Role: domain.RoleAdministrador}
)
