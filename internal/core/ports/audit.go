package ports

import (
	"context"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRecorder accepts entries without blocking the caller on persistence.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
