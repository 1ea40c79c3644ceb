package service

import (
	"context"
	"errors"

	"github.com/answerhub/forum-api/internal/core/domain"
	"github.com/answerhub/forum-api/internal/core/ports"
)

// SessionAuthenticator resolves bearer tokens into principals. The session
// store is the source of truth for the active/signed-out boundary; the
// token's own expiry claim is advisory and deliberately not enforced here.
type SessionAuthenticator struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
}

func NewSessionAuthenticator(sessions ports.SessionRepository, users ports.UserRepository) *SessionAuthenticator {
	return &SessionAuthenticator{sessions: sessions, users: users}
}

// Authenticate looks the token up and yields the principal behind it.
// Check order is fixed: existence first, then the signed-out rule. No side
// effects on the session.
func (a *SessionAuthenticator) Authenticate(ctx context.Context, token, action string) (*ports.Principal, error) {
	session, err := a.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil, domain.ErrNotSignedIn()
		}
		return nil, err
	}

	if session.SignedOut() {
		return nil, domain.ErrSignedOut(action)
	}

	// Identity and role come from the user record the session points at; a
	// user deleted out from under a live session authenticates as nobody.
	user, err := a.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNoUser) {
			return nil, domain.ErrNotSignedIn()
		}
		return nil, err
	}

	return &ports.Principal{
		UserID:   session.UserID,
		Username: user.Username,
		Role:     user.Role,
		Session:  session,
	}, nil
}

// AccessGuard evaluates the capability decision table. It is stateless.
type AccessGuard struct{}

func NewAccessGuard() *AccessGuard {
	return &AccessGuard{}
}

// Authorize applies the fixed decision table. Role comparisons are by value
// against the closed Role enumeration; ownership comparisons are against the
// resource's stored owner id.
func (g *AccessGuard) Authorize(principal *ports.Principal, capability ports.Capability, ownerID, denyMsg string) error {
	if principal == nil {
		return domain.ErrNotSignedIn()
	}

	switch capability {
	case ports.AnyAuthenticatedUser:
		return nil
	case ports.ResourceOwnerOnly:
		if principal.UserID == ownerID {
			return nil
		}
	case ports.OwnerOrAdmin:
		if principal.UserID == ownerID || principal.Role == domain.RoleAdmin {
			return nil
		}
	case ports.AdminOnly:
		if principal.Role == domain.RoleAdmin {
			return nil
		}
	}

	return domain.ErrForbidden(denyMsg)
}
