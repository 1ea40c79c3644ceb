package domain

import "time"

// AuditEvent records a security-relevant action (sign-in, sign-out,
// moderation delete) for the moderation trail. Events are persisted
// asynchronously and are append-only.
type AuditEvent struct {
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	TargetID   string    `json:"target_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
