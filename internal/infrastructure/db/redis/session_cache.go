package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/answerhub/forum-api/internal/api/metrics"
	"github.com/answerhub/forum-api/internal/core/domain"
	"github.com/answerhub/forum-api/internal/core/ports"
)

// activeEntryTTL bounds how long an active-session snapshot may live in the
// cache. A cache fill that races a logout invalidation can leave a stale
// active snapshot behind; the short TTL caps that window at seconds instead
// of the full session TTL. Signed-out snapshots are immutable and may be
// cached for the session TTL.
const activeEntryTTL = 30 * time.Second

// CachedSessionRepository is a read-through cache in front of the durable
// session store. The durable store stays the source of truth for the
// active/signed-out boundary; the cache only accelerates the per-request
// token lookup. A logout overwrites the cached entry with the signed-out
// snapshot rather than deleting it, so readers converge on signed-out
// without a round trip. Cache failures are never fatal — the repository
// falls back to the inner store.
type CachedSessionRepository struct {
	inner  ports.SessionRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewCachedSessionRepository(inner ports.SessionRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedSessionRepository {
	return &CachedSessionRepository{inner: inner, client: client, ttl: ttl, log: log}
}

func sessionKey(token string) string {
	return "session:" + token
}

func userSessionsKey(userID string) string {
	return "user_sessions:" + userID
}

func (r *CachedSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if err := r.inner.Create(ctx, session); err != nil {
		return err
	}
	r.cache(ctx, session)
	// Track the user's tokens so a cascade logout can drop them all.
	if err := r.client.SAdd(ctx, userSessionsKey(session.UserID), session.Token).Err(); err != nil {
		r.log.Warn().Err(err).Msg("session cache: index add failed")
	}
	return nil
}

func (r *CachedSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if err == nil {
		var s domain.Session
		if jsonErr := json.Unmarshal(raw, &s); jsonErr == nil {
			metrics.SessionCacheTotal.WithLabelValues("hit").Inc()
			return &s, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		_ = r.client.Del(ctx, sessionKey(token)).Err()
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warn().Err(err).Msg("session cache: read failed, falling back to store")
	}

	metrics.SessionCacheTotal.WithLabelValues("miss").Inc()
	session, err := r.inner.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	r.cache(ctx, session)
	return session, nil
}

func (r *CachedSessionRepository) RecordLogout(ctx context.Context, token string, at time.Time) error {
	if err := r.inner.RecordLogout(ctx, token, at); err != nil {
		return err
	}
	// Overwrite the cached entry with the store's signed-out view. A plain
	// delete would let an in-flight cache fill resurrect the active snapshot.
	session, err := r.inner.FindByToken(ctx, token)
	if err != nil {
		r.log.Warn().Err(err).Msg("session cache: tombstone read failed")
		if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
			r.log.Warn().Err(err).Msg("session cache: invalidate failed")
		}
		return nil
	}
	r.cache(ctx, session)
	return nil
}

func (r *CachedSessionRepository) RecordLogoutAll(ctx context.Context, userID string, at time.Time) error {
	if err := r.inner.RecordLogoutAll(ctx, userID, at); err != nil {
		return err
	}

	tokens, err := r.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		r.log.Warn().Err(err).Msg("session cache: index read failed")
		return nil
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, sessionKey(t))
	}
	keys = append(keys, userSessionsKey(userID))
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn().Err(err).Msg("session cache: cascade invalidate failed")
	}
	return nil
}

func (r *CachedSessionRepository) cache(ctx context.Context, session *domain.Session) {
	raw, err := json.Marshal(session)
	if err != nil {
		return
	}
	ttl := r.ttl
	if session.Active() {
		ttl = activeEntryTTL
	}
	if err := r.client.Set(ctx, sessionKey(session.Token), raw, ttl).Err(); err != nil {
		r.log.Warn().Err(err).Msg("session cache: write failed")
	}
}

var _ ports.SessionRepository = (*CachedSessionRepository)(nil)

// AuditDedup provides idempotency checks for the audit pipeline, backed by
// Redis. Key format: audit:<actor>:<action>:<unix_timestamp>.
type AuditDedup struct {
	client *redis.Client
	ttl    time.Duration
}

const defaultDedupTTL = time.Hour

func NewAuditDedup(client *redis.Client) *AuditDedup {
	return &AuditDedup{client: client, ttl: defaultDedupTTL}
}

// IsDuplicate reports whether this exact event has already been processed.
func (d *AuditDedup) IsDuplicate(ctx context.Context, actorID, action string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(actorID, action, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("audit dedup check: %w", err)
	}
	if n > 0 {
		metrics.AuditDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.AuditDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records that this event has been processed (expires after the TTL).
func (d *AuditDedup) Mark(ctx context.Context, actorID, action string, ts time.Time) error {
	return d.client.Set(ctx, d.key(actorID, action, ts), "1", d.ttl).Err()
}

func (d *AuditDedup) key(actorID, action string, ts time.Time) string {
	return fmt.Sprintf("audit:%s:%s:%d", actorID, action, ts.Unix())
}
