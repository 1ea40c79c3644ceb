package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/answerhub/forum-api/internal/core/domain"
	"github.com/answerhub/forum-api/internal/core/ports"
)

// QuestionService implements question use cases. Every operation runs the
// same ordered chain: authenticate the token, then (where a target resource
// is involved) resolve it, then authorize, then mutate.
type QuestionService struct {
	questions ports.QuestionRepository
	users     ports.UserRepository
	auth      ports.Authenticator
	guard     ports.Guard
	audit     ports.AuditRecorder
	logger    zerolog.Logger
}

func NewQuestionService(
	questions ports.QuestionRepository,
	users ports.UserRepository,
	auth ports.Authenticator,
	guard ports.Guard,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *QuestionService {
	return &QuestionService{
		questions: questions,
		users:     users,
		auth:      auth,
		guard:     guard,
		audit:     audit,
		logger:    logger,
	}
}

func (s *QuestionService) Create(ctx context.Context, token, content string) (*domain.Question, error) {
	principal, err := s.auth.Authenticate(ctx, token, "post a question")
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(principal, ports.AnyAuthenticatedUser, "", ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	question := &domain.Question{
		ID:        uuid.NewString(),
		AuthorID:  principal.UserID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info().Str("question_id", question.ID).Str("author_id", principal.UserID).Msg("question created")
	return question, nil
}

func (s *QuestionService) GetAll(ctx context.Context, token string) ([]*domain.Question, error) {
	principal, err := s.auth.Authenticate(ctx, token, "get all questions")
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(principal, ports.AnyAuthenticatedUser, "", ""); err != nil {
		return nil, err
	}
	return s.questions.FindAll(ctx)
}

func (s *QuestionService) GetAllByUser(ctx context.Context, token, userID string) ([]*domain.Question, error) {
	principal, err := s.auth.Authenticate(ctx, token, "get all questions posted by a specific user")
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(principal, ports.AnyAuthenticatedUser, "", ""); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNoUser) {
			return nil, domain.ErrUserNotFound("User with entered uuid whose question details are to be seen does not exist")
		}
		return nil, err
	}
	return s.questions.FindByAuthor(ctx, userID)
}

// Edit replaces the question content. Owner only; admins get no special
// treatment here.
func (s *QuestionService) Edit(ctx context.Context, token, questionID, content string) (*domain.Question, error) {
	principal, err := s.auth.Authenticate(ctx, token, "edit the question")
	if err != nil {
		return nil, err
	}

	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, domain.ErrNoQuestion) {
			return nil, domain.ErrQuestionNotFound("Entered question uuid does not exist")
		}
		return nil, err
	}

	if err := s.guard.Authorize(principal, ports.ResourceOwnerOnly, question.AuthorID,
		"Only the question owner can edit the question"); err != nil {
		return nil, err
	}

	question.Content = content
	question.UpdatedAt = time.Now().UTC()
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}

	s.logger.Info().Str("question_id", question.ID).Msg("question edited")
	return question, nil
}

func (s *QuestionService) Delete(ctx context.Context, token, questionID string) (string, error) {
	principal, err := s.auth.Authenticate(ctx, token, "delete a question")
	if err != nil {
		return "", err
	}

	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, domain.ErrNoQuestion) {
			return "", domain.ErrQuestionNotFound("Entered question uuid does not exist")
		}
		return "", err
	}

	if err := s.guard.Authorize(principal, ports.OwnerOrAdmin, question.AuthorID,
		"Only the question owner or admin can delete the question"); err != nil {
		return "", err
	}

	if err := s.questions.Delete(ctx, question.ID); err != nil {
		return "", err
	}

	s.audit.Record(domain.AuditEvent{
		ActorID:    principal.UserID,
		Action:     "question.deleted",
		TargetID:   question.ID,
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Str("question_id", question.ID).Str("actor_id", principal.UserID).Msg("question deleted")
	return question.ID, nil
}
