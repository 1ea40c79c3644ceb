package ports

import (
	"context"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// AnswerService defines answer use cases, gated the same way as questions.
type AnswerService interface {
	Create(ctx context.Context, token, questionID, content string) (*domain.Answer, error)
	GetAllByQuestion(ctx context.Context, token, questionID string) ([]*domain.Answer, error)
	Edit(ctx context.Context, token, answerID, content string) (*domain.Answer, error)
	// Delete removes the answer and returns its id.
	Delete(ctx context.Context, token, answerID string) (string, error)
}
