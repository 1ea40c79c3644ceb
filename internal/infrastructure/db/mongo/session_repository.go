package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/answerhub/forum-api/internal/core/domain"
)

const sessionsCollection = "sessions"

// SessionRepository persists issued tokens. The unique index on the token
// column is what guarantees token uniqueness under concurrent sign-in; no
// in-process locking is involved. Sessions are never deleted, only stamped
// with a logout timestamp.
type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionsCollection)}
}

type mongoSession struct {
	Token     string     `bson:"_id"`
	UserID    string     `bson:"user_id"`
	LoginAt   time.Time  `bson:"login_at"`
	ExpiresAt time.Time  `bson:"expires_at"`
	LogoutAt  *time.Time `bson:"logout_at,omitempty"`
}

func (ms *mongoSession) toDomain() *domain.Session {
	s := &domain.Session{
		Token:     ms.Token,
		UserID:    ms.UserID,
		LoginAt:   ms.LoginAt.UTC(),
		ExpiresAt: ms.ExpiresAt.UTC(),
	}
	if ms.LogoutAt != nil {
		at := ms.LogoutAt.UTC()
		s.LogoutAt = &at
	}
	return s
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSession{
		Token:     session.Token,
		UserID:    session.UserID,
		LoginAt:   session.LoginAt,
		ExpiresAt: session.ExpiresAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"_id": token}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return ms.toDomain(), nil
}

// RecordLogout stamps the logout timestamp. Last writer wins; a concurrent
// sign-out of the same token simply overwrites the timestamp.
func (r *SessionRepository) RecordLogout(ctx context.Context, token string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": token}, bson.M{"$set": bson.M{"logout_at": at}})
	if err != nil {
		return fmt.Errorf("record logout: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoSession
	}
	return nil
}

// RecordLogoutAll stamps every still-active session of the user, used by the
// admin-delete cascade.
func (r *SessionRepository) RecordLogoutAll(ctx context.Context, userID string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "logout_at": bson.M{"$exists": false}}
	if _, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"logout_at": at}}); err != nil {
		return fmt.Errorf("record logout all: %w", err)
	}
	return nil
}

// EnsureIndexes creates the token uniqueness constraint and the cascade
// lookup path. The token is the document id, unique by construction; the
// user_id index serves RecordLogoutAll.
func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
