package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/answerhub/forum-api/internal/core/domain"
	"github.com/answerhub/forum-api/internal/core/ports"
)

const defaultSessionTTL = 8 * time.Hour

// UserService implements registration, the session lifecycle and admin
// moderation of accounts.
type UserService struct {
	users     ports.UserRepository
	sessions  ports.SessionRepository
	auth      ports.Authenticator
	guard     ports.Guard
	audit     ports.AuditRecorder
	jwtSecret string
	ttl       time.Duration
	logger    zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	auth ports.Authenticator,
	guard ports.Guard,
	audit ports.AuditRecorder,
	jwtSecret string,
	ttl time.Duration,
	logger zerolog.Logger,
) *UserService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &UserService{
		users:     users,
		sessions:  sessions,
		auth:      auth,
		guard:     guard,
		audit:     audit,
		jwtSecret: jwtSecret,
		ttl:       ttl,
		logger:    logger,
	}
}

// Register creates a new account. Username and email must each be globally
// unique; the pre-checks give deterministic error codes, the store's unique
// indexes close the race window.
func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrDuplicateUsername()
	} else if !errors.Is(err, domain.ErrNoUser) {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrDuplicateEmail()
	} else if !errors.Is(err, domain.ErrNoUser) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:            uuid.NewString(),
		Username:      input.Username,
		Email:         input.Email,
		PasswordHash:  string(hash),
		Role:          domain.RoleUser,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Country:       input.Country,
		AboutMe:       input.AboutMe,
		DOB:           input.DOB,
		ContactNumber: input.ContactNumber,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration slipped past the pre-checks; the store
		// reports which unique index fired.
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return nil, domain.ErrDuplicateEmail()
		case errors.Is(err, domain.ErrDuplicateKey):
			return nil, domain.ErrDuplicateUsername()
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// SignIn verifies credentials and mints a brand-new active session. A
// previous session for the same user is left untouched; sessions are never
// resurrected.
func (s *UserService) SignIn(ctx context.Context, username, password string) (*domain.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNoUser) {
			return nil, domain.ErrUnknownUsername()
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrBadPassword()
	}

	now := time.Now().UTC()
	token, err := s.mintToken(user, now)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		LoginAt:   now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{ActorID: user.ID, Action: "user.signin", OccurredAt: now})
	s.logger.Info().Str("user_id", user.ID).Msg("user signed in")
	return session, nil
}

// SignOut records the logout timestamp on the session. Repeated sign-out of
// the same token is idempotent; the latest timestamp wins.
func (s *UserService) SignOut(ctx context.Context, token string) (string, error) {
	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return "", domain.ErrSignOutNoSession()
		}
		return "", err
	}

	now := time.Now().UTC()
	if err := s.sessions.RecordLogout(ctx, token, now); err != nil {
		return "", err
	}

	s.audit.Record(domain.AuditEvent{ActorID: session.UserID, Action: "user.signout", OccurredAt: now})
	s.logger.Info().Str("user_id", session.UserID).Msg("user signed out")
	return session.UserID, nil
}

// GetProfile returns the profile of userID. Any authenticated user may read
// any profile.
func (s *UserService) GetProfile(ctx context.Context, token, userID string) (*domain.User, error) {
	principal, err := s.auth.Authenticate(ctx, token, "get user details")
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(principal, ports.AnyAuthenticatedUser, "", ""); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoUser) {
			return nil, domain.ErrUserNotFound("User with entered uuid does not exist")
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the target account. Admin only, and the target must
// exist — that precondition is checked before the role check so a bogus id
// surfaces USR-001 even to non-admins. Deleting a user signs out all of the
// user's sessions; authored questions and answers are retained.
func (s *UserService) DeleteUser(ctx context.Context, token, userID string) (string, error) {
	principal, err := s.auth.Authenticate(ctx, token, "")
	if err != nil {
		return "", err
	}

	target, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoUser) {
			return "", domain.ErrUserNotFound("User with entered uuid to be deleted does not exist")
		}
		return "", err
	}

	if err := s.guard.Authorize(principal, ports.AdminOnly, "",
		"Unauthorized Access, Entered user is not an admin"); err != nil {
		return "", err
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	if err := s.sessions.RecordLogoutAll(ctx, target.ID, now); err != nil {
		// The account is gone; a failed cascade only leaves sessions that can
		// no longer resolve to a user. Log and move on.
		s.logger.Warn().Err(err).Str("user_id", target.ID).Msg("session cascade failed")
	}

	s.audit.Record(domain.AuditEvent{ActorID: principal.UserID, Action: "user.deleted", TargetID: target.ID, OccurredAt: now})
	s.logger.Info().Str("admin_id", principal.UserID).Str("user_id", target.ID).Msg("user deleted")
	return target.ID, nil
}

// mintToken builds the signed bearer token for a new session. The token is
// self-describing (subject, role, issue and expiry claims) and unguessable
// (HS256 signature over a random jti).
func (s *UserService) mintToken(user *domain.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
		"jti":  uuid.NewString(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
