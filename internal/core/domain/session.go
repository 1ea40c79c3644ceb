package domain

import "time"

// Session is one issued bearer token. Sessions move one way,
// ACTIVE -> SIGNED_OUT, by recording LogoutAt exactly once; a fresh sign-in
// always mints a new record rather than resurrecting an old one. Records are
// never physically deleted (audit retention).
type Session struct {
	Token     string     `json:"token"`
	UserID    string     `json:"user_id"`
	LoginAt   time.Time  `json:"login_at"`
	ExpiresAt time.Time  `json:"expires_at"` // advisory; not enforced by the authenticator
	LogoutAt  *time.Time `json:"logout_at,omitempty"`
}

// SignedOut reports whether a logout has been recorded for this session.
// The rule is deliberately a single consistent predicate: signed out iff a
// logout timestamp exists and does not predate the login. Explicit sign-out
// always wins immediately; the 8-hour expiry claim is advisory metadata and
// plays no part here.
func (s *Session) SignedOut() bool {
	return s.LogoutAt != nil && !s.LogoutAt.Before(s.LoginAt)
}

// Active reports whether the session is still usable for authenticated actions.
func (s *Session) Active() bool {
	return !s.SignedOut()
}
