package service

import (
	"context"
	"time"

	"github.com/answerhub/forum-api/internal/core/domain"
)

// In-memory stand-ins for the Mongo repositories. Reads hand out clones so
// mutations only land through the repository methods, mirroring a real store.

type stubUserRepo struct {
	users     map[string]*domain.User // keyed by id
	createErr error                   // forced Create failure, checked first
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNoUser
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNoUser
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrNoUser
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNoUser
	}
	delete(r.users, id)
	return nil
}

// setRole flips a stored user's role directly, standing in for out-of-band
// admin promotion.
func (r *stubUserRepo) setRole(id string, role domain.Role) {
	if u, ok := r.users[id]; ok {
		u.Role = role
	}
}

type stubSessionRepo struct {
	sessions map[string]*domain.Session // keyed by token
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.Session)}
}

func cloneSession(s *domain.Session) *domain.Session {
	clone := *s
	if s.LogoutAt != nil {
		at := *s.LogoutAt
		clone.LogoutAt = &at
	}
	return &clone
}

func (r *stubSessionRepo) Create(_ context.Context, session *domain.Session) error {
	if _, exists := r.sessions[session.Token]; exists {
		return domain.ErrDuplicateKey
	}
	r.sessions[session.Token] = cloneSession(session)
	return nil
}

func (r *stubSessionRepo) FindByToken(_ context.Context, token string) (*domain.Session, error) {
	if s, ok := r.sessions[token]; ok {
		return cloneSession(s), nil
	}
	return nil, domain.ErrNoSession
}

func (r *stubSessionRepo) RecordLogout(_ context.Context, token string, at time.Time) error {
	s, ok := r.sessions[token]
	if !ok {
		return domain.ErrNoSession
	}
	s.LogoutAt = &at
	return nil
}

func (r *stubSessionRepo) RecordLogoutAll(_ context.Context, userID string, at time.Time) error {
	for _, s := range r.sessions {
		if s.UserID == userID && s.LogoutAt == nil {
			t := at
			s.LogoutAt = &t
		}
	}
	return nil
}

type stubQuestionRepo struct {
	questions map[string]*domain.Question
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: make(map[string]*domain.Question)}
}

func (r *stubQuestionRepo) Create(_ context.Context, q *domain.Question) error {
	clone := *q
	r.questions[q.ID] = &clone
	return nil
}

func (r *stubQuestionRepo) FindByID(_ context.Context, id string) (*domain.Question, error) {
	if q, ok := r.questions[id]; ok {
		clone := *q
		return &clone, nil
	}
	return nil, domain.ErrNoQuestion
}

func (r *stubQuestionRepo) FindAll(_ context.Context) ([]*domain.Question, error) {
	out := make([]*domain.Question, 0, len(r.questions))
	for _, q := range r.questions {
		clone := *q
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubQuestionRepo) FindByAuthor(_ context.Context, authorID string) ([]*domain.Question, error) {
	var out []*domain.Question
	for _, q := range r.questions {
		if q.AuthorID == authorID {
			clone := *q
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubQuestionRepo) Update(_ context.Context, q *domain.Question) error {
	if _, ok := r.questions[q.ID]; !ok {
		return domain.ErrNoQuestion
	}
	clone := *q
	r.questions[q.ID] = &clone
	return nil
}

func (r *stubQuestionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.questions[id]; !ok {
		return domain.ErrNoQuestion
	}
	delete(r.questions, id)
	return nil
}

type stubAnswerRepo struct {
	answers map[string]*domain.Answer
}

func newStubAnswerRepo() *stubAnswerRepo {
	return &stubAnswerRepo{answers: make(map[string]*domain.Answer)}
}

func (r *stubAnswerRepo) Create(_ context.Context, a *domain.Answer) error {
	clone := *a
	r.answers[a.ID] = &clone
	return nil
}

func (r *stubAnswerRepo) FindByID(_ context.Context, id string) (*domain.Answer, error) {
	if a, ok := r.answers[id]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrNoAnswer
}

func (r *stubAnswerRepo) FindByQuestion(_ context.Context, questionID string) ([]*domain.Answer, error) {
	var out []*domain.Answer
	for _, a := range r.answers {
		if a.QuestionID == questionID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubAnswerRepo) Update(_ context.Context, a *domain.Answer) error {
	if _, ok := r.answers[a.ID]; !ok {
		return domain.ErrNoAnswer
	}
	clone := *a
	r.answers[a.ID] = &clone
	return nil
}

func (r *stubAnswerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.answers[id]; !ok {
		return domain.ErrNoAnswer
	}
	delete(r.answers, id)
	return nil
}

type capturedAudit struct {
	events []domain.AuditEvent
}

func (a *capturedAudit) Record(event domain.AuditEvent) {
	a.events = append(a.events, event)
}
