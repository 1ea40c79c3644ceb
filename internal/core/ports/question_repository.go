package ports

import (
	"context"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// QuestionRepository defines persistence operations for questions.
// Absence is reported as domain.ErrNoQuestion.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) error
	FindByID(ctx context.Context, id string) (*domain.Question, error)
	FindAll(ctx context.Context) ([]*domain.Question, error)
	FindByAuthor(ctx context.Context, authorID string) ([]*domain.Question, error)
	Update(ctx context.Context, q *domain.Question) error
	Delete(ctx context.Context, id string) error
}
