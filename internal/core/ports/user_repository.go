package ports

import (
	"context"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// UserRepository defines persistence operations for user credentials and
// profiles. Absence is reported as domain.ErrNoUser; a violated unique index
// is reported as domain.ErrUsernameTaken or domain.ErrEmailTaken depending on
// which field collided.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
