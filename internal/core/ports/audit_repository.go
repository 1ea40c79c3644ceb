package ports

import (
	"context"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// AuditRepository appends moderation-trail events. Append-only by contract.
type AuditRepository interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
}
