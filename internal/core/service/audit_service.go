package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/answerhub/forum-api/internal/core/domain"
	"github.com/answerhub/forum-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for audit events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, actorID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, actorID, action string, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and persists a single audit event. Duplicates (same
// actor, action and timestamp, e.g. a redelivered enqueue) are skipped
// silently.
func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event.ActorID, event.Action, event.OccurredAt)
	if err != nil {
		s.log.Warn().Err(err).Str("action", event.Action).Msg("dedup check failed, recording anyway")
	} else if isDup {
		s.log.Debug().Str("actor_id", event.ActorID).Str("action", event.Action).Msg("duplicate audit event skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, event.ActorID, event.Action, event.OccurredAt); markErr != nil {
		s.log.Warn().Err(markErr).Str("action", event.Action).Msg("failed to set dedup key")
	}

	if err := s.repo.Append(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("actor_id", event.ActorID).
		Str("action", event.Action).
		Str("target_id", event.TargetID).
		Msg("audit event recorded")

	return nil
}
