package ports

import (
	"context"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// AuditRecorder accepts events for asynchronous recording. Implementations
// must not block the caller beyond a bounded enqueue.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditService processes a single audit event: deduplicates and persists it.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}
