package ports

import (
	"context"
	"time"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// SessionRepository defines persistence operations for issued tokens.
// Token uniqueness under concurrent sign-in is the store's job (unique
// index), not the caller's. Absence is reported as domain.ErrNoSession.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	// RecordLogout stamps the logout timestamp on the session. This is the
	// only mutation a session ever receives; last writer wins.
	RecordLogout(ctx context.Context, token string, at time.Time) error
	// RecordLogoutAll stamps the logout timestamp on every active session
	// belonging to the user (admin-delete cascade).
	RecordLogoutAll(ctx context.Context, userID string, at time.Time) error
}
