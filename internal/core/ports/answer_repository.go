package ports

import (
	"context"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// AnswerRepository defines persistence operations for answers.
// Absence is reported as domain.ErrNoAnswer.
type AnswerRepository interface {
	Create(ctx context.Context, a *domain.Answer) error
	FindByID(ctx context.Context, id string) (*domain.Answer, error)
	FindByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error)
	Update(ctx context.Context, a *domain.Answer) error
	Delete(ctx context.Context, id string) error
}
