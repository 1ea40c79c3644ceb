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

// AnswerService implements answer use cases, gated the same way as questions.
type AnswerService struct {
	answers   ports.AnswerRepository
	questions ports.QuestionRepository
	auth      ports.Authenticator
	guard     ports.Guard
	audit     ports.AuditRecorder
	logger    zerolog.Logger
}

func NewAnswerService(
	answers ports.AnswerRepository,
	questions ports.QuestionRepository,
	auth ports.Authenticator,
	guard ports.Guard,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *AnswerService {
	return &AnswerService{
		answers:   answers,
		questions: questions,
		auth:      auth,
		guard:     guard,
		audit:     audit,
		logger:    logger,
	}
}

func (s *AnswerService) Create(ctx context.Context, token, questionID, content string) (*domain.Answer, error) {
	principal, err := s.auth.Authenticate(ctx, token, "post an answer")
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(principal, ports.AnyAuthenticatedUser, "", ""); err != nil {
		return nil, err
	}

	if _, err := s.questions.FindByID(ctx, questionID); err != nil {
		if errors.Is(err, domain.ErrNoQuestion) {
			return nil, domain.ErrQuestionNotFound("The question entered is invalid")
		}
		return nil, err
	}

	now := time.Now().UTC()
	answer := &domain.Answer{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		AuthorID:   principal.UserID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.answers.Create(ctx, answer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("answer_id", answer.ID).Str("question_id", questionID).Msg("answer created")
	return answer, nil
}

func (s *AnswerService) GetAllByQuestion(ctx context.Context, token, questionID string) ([]*domain.Answer, error) {
	principal, err := s.auth.Authenticate(ctx, token, "get the answers")
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(principal, ports.AnyAuthenticatedUser, "", ""); err != nil {
		return nil, err
	}

	if _, err := s.questions.FindByID(ctx, questionID); err != nil {
		if errors.Is(err, domain.ErrNoQuestion) {
			return nil, domain.ErrQuestionNotFound("The question with entered uuid whose details are to be seen does not exist")
		}
		return nil, err
	}
	return s.answers.FindByQuestion(ctx, questionID)
}

// Edit replaces the answer content. Ownership is decided against the stored
// answer's author id, never against anything presented by the caller.
func (s *AnswerService) Edit(ctx context.Context, token, answerID, content string) (*domain.Answer, error) {
	principal, err := s.auth.Authenticate(ctx, token, "edit an answer")
	if err != nil {
		return nil, err
	}

	answer, err := s.answers.FindByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, domain.ErrNoAnswer) {
			return nil, domain.ErrAnswerNotFound()
		}
		return nil, err
	}

	if err := s.guard.Authorize(principal, ports.ResourceOwnerOnly, answer.AuthorID,
		"Only the answer owner can edit the answer"); err != nil {
		return nil, err
	}

	answer.Content = content
	answer.UpdatedAt = time.Now().UTC()
	if err := s.answers.Update(ctx, answer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("answer_id", answer.ID).Msg("answer edited")
	return answer, nil
}

func (s *AnswerService) Delete(ctx context.Context, token, answerID string) (string, error) {
	principal, err := s.auth.Authenticate(ctx, token, "delete an answer")
	if err != nil {
		return "", err
	}

	answer, err := s.answers.FindByID(ctx, answerID)
	if err != nil {
		if errors.Is(err, domain.ErrNoAnswer) {
			return "", domain.ErrAnswerNotFound()
		}
		return "", err
	}

	if err := s.guard.Authorize(principal, ports.OwnerOrAdmin, answer.AuthorID,
		"Only the answer owner or admin can delete the answer"); err != nil {
		return "", err
	}

	if err := s.answers.Delete(ctx, answer.ID); err != nil {
		return "", err
	}

	s.audit.Record(domain.AuditEvent{
		ActorID:    principal.UserID,
		Action:     "answer.deleted",
		TargetID:   answer.ID,
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Str("answer_id", answer.ID).Str("actor_id", principal.UserID).Msg("answer deleted")
	return answer.ID, nil
}
