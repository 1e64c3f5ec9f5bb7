package service

import (
	"time"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

type nopRecorder struct{}

func (nopRecorder) Record(domain.AuditEntry) {}

// NopRecorder discards audit entries. Used when no audit sink is configured.
func NopRecorder() ports.AuditRecorder { return nopRecorder{} }

func orNop(rec ports.AuditRecorder) ports.AuditRecorder {
	if rec == nil {
		return nopRecorder{}
	}
	return rec
}

func auditEntry(actor *domain.User, action domain.AuditAction, entity string, id int64) domain.AuditEntry {
	e := domain.AuditEntry{
		Action:   action,
		Entity:   entity,
		EntityID: id,
		At:       time.Now().UTC(),
	}
	if actor != nil {
		e.ActorID = actor.ID
		e.Actor = actor.Username
	}
	return e
}
