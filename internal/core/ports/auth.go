package ports

import (
	"context"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// Principal is the authenticated identity resolved from a valid session.
// UserID is re-derived from the matched session record, not trusted from the
// request, so "self" comparisons always go through the store's view.
type Principal struct {
	UserID   string
	Username string
	Role     domain.Role
	Session  *domain.Session
}

// Capability names an access-control rule evaluated by the Guard.
type Capability int

const (
	// AnyAuthenticatedUser allows every authenticated principal.
	AnyAuthenticatedUser Capability = iota
	// ResourceOwnerOnly allows exactly the resource owner.
	ResourceOwnerOnly
	// OwnerOrAdmin allows the resource owner or any admin principal.
	OwnerOrAdmin
	// AdminOnly allows only admin principals.
	AdminOnly
)

// Authenticator validates a presented bearer token against the session store.
// action is the human-facing suffix used in the signed-out failure message
// ("post a question", "delete an answer", ...); the failure code is uniform
// across call sites. Authenticate has no side effects.
type Authenticator interface {
	Authenticate(ctx context.Context, token, action string) (*Principal, error)
}

// Guard decides allow/deny for an authenticated principal. ownerID is the
// stored owner of the target resource (ignored for capabilities that do not
// involve ownership); denyMsg is the human-facing message attached to the
// ATHR-003 failure. Callers must authenticate first — the guard is never
// consulted with a nil principal.
type Guard interface {
	Authorize(principal *Principal, capability Capability, ownerID, denyMsg string) error
}
