package ports

import (
	"context"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// QuestionService defines question use cases. Every operation authenticates
// the caller's token before touching the store; edit is owner-only and
// delete is owner-or-admin.
type QuestionService interface {
	Create(ctx context.Context, token, content string) (*domain.Question, error)
	GetAll(ctx context.Context, token string) ([]*domain.Question, error)
	GetAllByUser(ctx context.Context, token, userID string) ([]*domain.Question, error)
	Edit(ctx context.Context, token, questionID, content string) (*domain.Question, error)
	// Delete removes the question and returns its id.
	Delete(ctx context.Context, token, questionID string) (string, error)
}
