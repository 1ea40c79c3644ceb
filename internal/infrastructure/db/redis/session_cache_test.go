package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/answerhub/forum-api/internal/core/domain"
)

type countingSessionRepo struct {
	sessions map[string]*domain.Session
	finds    int
}

func newCountingSessionRepo() *countingSessionRepo {
	return &countingSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *countingSessionRepo) Create(_ context.Context, s *domain.Session) error {
	clone := *s
	r.sessions[s.Token] = &clone
	return nil
}

func (r *countingSessionRepo) FindByToken(_ context.Context, token string) (*domain.Session, error) {
	r.finds++
	if s, ok := r.sessions[token]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, domain.ErrNoSession
}

func (r *countingSessionRepo) RecordLogout(_ context.Context, token string, at time.Time) error {
	s, ok := r.sessions[token]
	if !ok {
		return domain.ErrNoSession
	}
	s.LogoutAt = &at
	return nil
}

func (r *countingSessionRepo) RecordLogoutAll(_ context.Context, userID string, at time.Time) error {
	for _, s := range r.sessions {
		if s.UserID == userID && s.LogoutAt == nil {
			t := at
			s.LogoutAt = &t
		}
	}
	return nil
}

func newCacheTest(t *testing.T) (*CachedSessionRepository, *countingSessionRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	inner := newCountingSessionRepo()
	cached := NewCachedSessionRepository(inner, rdb, 8*time.Hour, zerolog.Nop())
	return cached, inner, mr
}

func activeSession(token, userID string) *domain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Session{
		Token:     token,
		UserID:    userID,
		LoginAt:   now,
		ExpiresAt: now.Add(8 * time.Hour),
	}
}

func TestCachedFind_SecondReadServedFromCache(t *testing.T) {
	cached, inner, _ := newCacheTest(t)
	ctx := context.Background()

	if err := cached.Create(ctx, activeSession("tok-1", "u-1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := cached.FindByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("first find: %v", err)
	}
	storeReads := inner.finds

	second, err := cached.FindByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("second find: %v", err)
	}
	if inner.finds != storeReads {
		t.Fatalf("second read hit the store (%d reads), want cache hit", inner.finds)
	}
	if first.Token != second.Token || first.UserID != second.UserID || !first.LoginAt.Equal(second.LoginAt) {
		t.Fatalf("cached session differs: %+v vs %+v", first, second)
	}
}

func TestCachedFind_UnknownToken(t *testing.T) {
	cached, _, _ := newCacheTest(t)

	_, err := cached.FindByToken(context.Background(), "never-issued")
	if !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRecordLogout_OverwritesCachedEntry(t *testing.T) {
	cached, inner, _ := newCacheTest(t)
	ctx := context.Background()

	if err := cached.Create(ctx, activeSession("tok-1", "u-1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cached.FindByToken(ctx, "tok-1"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	if err := cached.RecordLogout(ctx, "tok-1", time.Now().UTC()); err != nil {
		t.Fatalf("record logout: %v", err)
	}

	// The cached entry now holds the signed-out snapshot; the read must
	// reflect the logout without another store round trip.
	storeReads := inner.finds
	s, err := cached.FindByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("find after logout: %v", err)
	}
	if !s.SignedOut() {
		t.Fatalf("stale cache: session still reads as active after logout")
	}
	if inner.finds != storeReads {
		t.Fatalf("read after logout hit the store, want cached signed-out snapshot")
	}
}

func TestCachedFind_StaleActiveEntryExpiresQuickly(t *testing.T) {
	cached, inner, mr := newCacheTest(t)
	ctx := context.Background()

	if err := cached.Create(ctx, activeSession("tok-1", "u-1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cached.FindByToken(ctx, "tok-1"); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	// Logout lands in the store only, standing in for a cache fill that
	// outlived the logout's overwrite.
	if err := inner.RecordLogout(ctx, "tok-1", time.Now().UTC()); err != nil {
		t.Fatalf("record logout: %v", err)
	}

	// Active snapshots carry a short TTL; once it lapses the read falls
	// through to the store and sees the logout.
	mr.FastForward(activeEntryTTL + time.Second)

	s, err := cached.FindByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("find after expiry: %v", err)
	}
	if !s.SignedOut() {
		t.Fatalf("signed-out session served as active after stale entry should have expired")
	}
}

func TestRecordLogoutAll_DropsEveryToken(t *testing.T) {
	cached, _, _ := newCacheTest(t)
	ctx := context.Background()

	for _, tok := range []string{"tok-1", "tok-2"} {
		if err := cached.Create(ctx, activeSession(tok, "u-1")); err != nil {
			t.Fatalf("create %s: %v", tok, err)
		}
		if _, err := cached.FindByToken(ctx, tok); err != nil {
			t.Fatalf("warm %s: %v", tok, err)
		}
	}

	if err := cached.RecordLogoutAll(ctx, "u-1", time.Now().UTC()); err != nil {
		t.Fatalf("cascade logout: %v", err)
	}

	for _, tok := range []string{"tok-1", "tok-2"} {
		s, err := cached.FindByToken(ctx, tok)
		if err != nil {
			t.Fatalf("find %s: %v", tok, err)
		}
		if !s.SignedOut() {
			t.Fatalf("token %s still reads as active after cascade", tok)
		}
	}
}

func TestAuditDedup_MarkThenHit(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	dedup := NewAuditDedup(rdb)
	ctx := context.Background()
	ts := time.Now().UTC()

	dup, err := dedup.IsDuplicate(ctx, "u-1", "user.signin", ts)
	if err != nil || dup {
		t.Fatalf("fresh event flagged duplicate (dup=%v err=%v)", dup, err)
	}
	if err := dedup.Mark(ctx, "u-1", "user.signin", ts); err != nil {
		t.Fatalf("mark: %v", err)
	}
	dup, err = dedup.IsDuplicate(ctx, "u-1", "user.signin", ts)
	if err != nil || !dup {
		t.Fatalf("marked event not flagged duplicate (dup=%v err=%v)", dup, err)
	}
}
