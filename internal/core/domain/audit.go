package domain

import "time"

// AuditAction names a mutation recorded in the audit trail.
type AuditAction string

const (
	AuditLogin        AuditAction = "login"
	AuditUserCreated  AuditAction = "user_created"
	AuditCreated      AuditAction = "created"
	AuditUpdated      AuditAction = "updated"
	AuditDeleted      AuditAction = "deleted"
	AuditStatusChange AuditAction = "status_changed"
	AuditAssigned     AuditAction = "assigned"
	AuditUnassigned   AuditAction = "unassigned"
)

// AuditEntry records who changed what.
type AuditEntry struct {
	ActorID   int64
	Actor     string
	Action    AuditAction
	Entity    string
	EntityID  int64
	Related   string
	RelatedID int64
	Detail    string
	At        time.Time
}

// Key groups entries that must be written in order.
func (e AuditEntry) Key() string {
	return e.Entity
}
