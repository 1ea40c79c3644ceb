package ports

import (
	"context"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Country       string
	AboutMe       string
	DOB           string
	ContactNumber string
}

// UserService defines account lifecycle and profile use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// SignIn mints a fresh session for valid credentials.
	SignIn(ctx context.Context, username, password string) (*domain.Session, error)
	// SignOut records the logout timestamp and returns the session's user id.
	SignOut(ctx context.Context, token string) (string, error)
	// GetProfile returns the profile of userID, gated on the caller's token.
	GetProfile(ctx context.Context, token, userID string) (*domain.User, error)
	// DeleteUser removes the target account (admin only) and signs out all of
	// its sessions. Returns the deleted user's id.
	DeleteUser(ctx context.Context, token, userID string) (string, error)
}
