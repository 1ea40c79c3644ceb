package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/answerhub/forum-api/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository appends moderation-trail events. Append-only; nothing in
// the system updates or deletes these documents.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ActorID    string    `bson:"actor_id"`
	Action     string    `bson:"action"`
	TargetID   string    `bson:"target_id,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
}

func (r *AuditRepository) Append(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditEvent{
		ActorID:    event.ActorID,
		Action:     event.Action,
		TargetID:   event.TargetID,
		OccurredAt: event.OccurredAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
