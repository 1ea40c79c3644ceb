package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/answerhub/forum-api/internal/core/domain"
	"github.com/answerhub/forum-api/internal/core/ports"
)

type testEnv struct {
	users     *stubUserRepo
	sessions  *stubSessionRepo
	questions *stubQuestionRepo
	answers   *stubAnswerRepo
	audit     *capturedAudit

	userSvc     *UserService
	questionSvc *QuestionService
	answerSvc   *AnswerService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:     newStubUserRepo(),
		sessions:  newStubSessionRepo(),
		questions: newStubQuestionRepo(),
		answers:   newStubAnswerRepo(),
		audit:     &capturedAudit{},
	}

	auth := NewSessionAuthenticator(env.sessions, env.users)
	guard := NewAccessGuard()
	log := zerolog.Nop()

	env.userSvc = NewUserService(env.users, env.sessions, auth, guard, env.audit, "secret", 8*time.Hour, log)
	env.questionSvc = NewQuestionService(env.questions, env.users, auth, guard, env.audit, log)
	env.answerSvc = NewAnswerService(env.answers, env.questions, auth, guard, env.audit, log)
	return env
}

func (env *testEnv) register(t *testing.T, username, password string) *domain.User {
	t.Helper()
	user, err := env.userSvc.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func (env *testEnv) signIn(t *testing.T, username, password string) *domain.Session {
	t.Helper()
	session, err := env.userSvc.SignIn(context.Background(), username, password)
	if err != nil {
		t.Fatalf("sign in %s: %v", username, err)
	}
	return session
}

func wantDomainErr(t *testing.T, err error, kind domain.ErrKind, code string) *domain.Error {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if de.Kind != kind || de.Code != code {
		t.Fatalf("expected kind=%d code=%s, got kind=%d code=%s (%s)", kind, code, de.Kind, de.Code, de.Message)
	}
	return de
}

func TestRegister_HashesPassword(t *testing.T) {
	env := newTestEnv()

	user := env.register(t, "alice", "pw1")
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected new users to get role USER, got %s", user.Role)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv()
	env.register(t, "alice", "pw1")

	_, err := env.userSvc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "pw2",
	})
	de := wantDomainErr(t, err, domain.KindConflict, domain.CodeSignupRestricted)
	if de.Message != "Try any other Username, this Username has already been taken" {
		t.Fatalf("unexpected message: %s", de.Message)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.register(t, "alice", "pw1")

	_, err := env.userSvc.Register(context.Background(), ports.RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "pw2",
	})
	wantDomainErr(t, err, domain.KindConflict, domain.CodeDuplicateEmail)
}

func TestRegister_RacedUsernameInsert(t *testing.T) {
	env := newTestEnv()
	// The pre-checks see a free username, then the store's unique index
	// fires on insert.
	env.users.createErr = domain.ErrUsernameTaken

	_, err := env.userSvc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw1",
	})
	wantDomainErr(t, err, domain.KindConflict, domain.CodeSignupRestricted)
}

func TestRegister_RacedEmailInsert(t *testing.T) {
	env := newTestEnv()
	env.users.createErr = domain.ErrEmailTaken

	_, err := env.userSvc.Register(context.Background(), ports.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw1",
	})
	wantDomainErr(t, err, domain.KindConflict, domain.CodeDuplicateEmail)
}

func TestSignIn_MintsFreshActiveSession(t *testing.T) {
	env := newTestEnv()
	user := env.register(t, "alice", "pw1")

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		session := env.signIn(t, "alice", "pw1")
		if session.Token == "" {
			t.Fatalf("expected non-empty token")
		}
		if seen[session.Token] {
			t.Fatalf("token %q issued twice", session.Token)
		}
		seen[session.Token] = true

		if session.UserID != user.ID {
			t.Fatalf("session bound to %s, want %s", session.UserID, user.ID)
		}
		if session.SignedOut() {
			t.Fatalf("fresh session must be active")
		}
		if got := session.ExpiresAt.Sub(session.LoginAt); got != 8*time.Hour {
			t.Fatalf("expected 8h TTL, got %v", got)
		}
	}
}

func TestSignIn_TokenIsSelfDescribing(t *testing.T) {
	env := newTestEnv()
	user := env.register(t, "alice", "pw1")
	session := env.signIn(t, "alice", "pw1")

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(session.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub=%s, got %v", user.ID, claims["sub"])
	}
	if claims["role"] != string(domain.RoleUser) {
		t.Fatalf("expected role claim USER, got %v", claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("expected an expiry claim")
	}
}

func TestSignIn_UnknownUsername(t *testing.T) {
	env := newTestEnv()

	_, err := env.userSvc.SignIn(context.Background(), "ghost", "pw")
	wantDomainErr(t, err, domain.KindBadCredential, domain.CodeUnknownUser)
}

func TestSignIn_WrongPassword(t *testing.T) {
	env := newTestEnv()
	env.register(t, "alice", "pw1")

	_, err := env.userSvc.SignIn(context.Background(), "alice", "wrong")
	wantDomainErr(t, err, domain.KindBadCredential, domain.CodeBadPassword)
}

func TestSignOut_RecordsLogoutOnce(t *testing.T) {
	env := newTestEnv()
	user := env.register(t, "alice", "pw1")
	session := env.signIn(t, "alice", "pw1")

	userID, err := env.userSvc.SignOut(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("sign out returned %s, want %s", userID, user.ID)
	}

	stored, err := env.sessions.FindByToken(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("session should be retained after sign-out: %v", err)
	}
	if !stored.SignedOut() {
		t.Fatalf("session should be signed out")
	}
}

func TestSignOut_RepeatedIsIdempotent(t *testing.T) {
	env := newTestEnv()
	env.register(t, "alice", "pw1")
	session := env.signIn(t, "alice", "pw1")

	if _, err := env.userSvc.SignOut(context.Background(), session.Token); err != nil {
		t.Fatalf("first sign out: %v", err)
	}
	first, _ := env.sessions.FindByToken(context.Background(), session.Token)

	if _, err := env.userSvc.SignOut(context.Background(), session.Token); err != nil {
		t.Fatalf("repeated sign out should be idempotent, got %v", err)
	}
	second, _ := env.sessions.FindByToken(context.Background(), session.Token)

	// Last writer wins on the timestamp.
	if second.LogoutAt.Before(*first.LogoutAt) {
		t.Fatalf("repeated sign-out moved the logout timestamp backwards")
	}
}

func TestSignOut_UnknownToken(t *testing.T) {
	env := newTestEnv()

	_, err := env.userSvc.SignOut(context.Background(), "never-issued")
	de := wantDomainErr(t, err, domain.KindNotSignedIn, domain.CodeSignupRestricted)
	if de.Message != "User is not Signed in" {
		t.Fatalf("unexpected message: %s", de.Message)
	}
}

func TestGetProfile_RequiresAuthentication(t *testing.T) {
	env := newTestEnv()
	user := env.register(t, "alice", "pw1")

	_, err := env.userSvc.GetProfile(context.Background(), "never-issued", user.ID)
	wantDomainErr(t, err, domain.KindUnauthenticated, domain.CodeNotSignedIn)
}

func TestGetProfile_SignedOutSession(t *testing.T) {
	env := newTestEnv()
	user := env.register(t, "alice", "pw1")
	session := env.signIn(t, "alice", "pw1")
	if _, err := env.userSvc.SignOut(context.Background(), session.Token); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	_, err := env.userSvc.GetProfile(context.Background(), session.Token, user.ID)
	de := wantDomainErr(t, err, domain.KindSignedOut, domain.CodeSignedOut)
	if de.Message != "User is signed out.Sign in first to get user details" {
		t.Fatalf("unexpected message: %s", de.Message)
	}
}

func TestGetProfile_TargetMissing(t *testing.T) {
	env := newTestEnv()
	env.register(t, "alice", "pw1")
	session := env.signIn(t, "alice", "pw1")

	_, err := env.userSvc.GetProfile(context.Background(), session.Token, "no-such-user")
	de := wantDomainErr(t, err, domain.KindNotFound, domain.CodeUserNotFound)
	if de.Message != "User with entered uuid does not exist" {
		t.Fatalf("unexpected message: %s", de.Message)
	}
}

func TestDeleteUser_AdminOnly(t *testing.T) {
	env := newTestEnv()
	alice := env.register(t, "alice", "pw1")
	bob := env.register(t, "bob", "pw2")
	session := env.signIn(t, "alice", "pw1")

	_, err := env.userSvc.DeleteUser(context.Background(), session.Token, bob.ID)
	de := wantDomainErr(t, err, domain.KindForbidden, domain.CodeForbidden)
	if de.Message != "Unauthorized Access, Entered user is not an admin" {
		t.Fatalf("unexpected message: %s", de.Message)
	}

	env.users.setRole(alice.ID, domain.RoleAdmin)
	deletedID, err := env.userSvc.DeleteUser(context.Background(), session.Token, bob.ID)
	if err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if deletedID != bob.ID {
		t.Fatalf("deleted %s, want %s", deletedID, bob.ID)
	}
	if _, err := env.users.FindByID(context.Background(), bob.ID); !errors.Is(err, domain.ErrNoUser) {
		t.Fatalf("user should be gone, got %v", err)
	}
}

func TestDeleteUser_TargetExistenceCheckedBeforeRole(t *testing.T) {
	env := newTestEnv()
	env.register(t, "alice", "pw1")
	session := env.signIn(t, "alice", "pw1")

	// Non-admin caller, missing target: existence wins.
	_, err := env.userSvc.DeleteUser(context.Background(), session.Token, "no-such-user")
	de := wantDomainErr(t, err, domain.KindNotFound, domain.CodeUserNotFound)
	if de.Message != "User with entered uuid to be deleted does not exist" {
		t.Fatalf("unexpected message: %s", de.Message)
	}
}

func TestDeleteUser_CascadesSessionSignOut(t *testing.T) {
	env := newTestEnv()
	admin := env.register(t, "root", "pw0")
	env.users.setRole(admin.ID, domain.RoleAdmin)
	adminSession := env.signIn(t, "root", "pw0")

	bob := env.register(t, "bob", "pw2")
	bobSession := env.signIn(t, "bob", "pw2")

	if _, err := env.userSvc.DeleteUser(context.Background(), adminSession.Token, bob.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	stored, err := env.sessions.FindByToken(context.Background(), bobSession.Token)
	if err != nil {
		t.Fatalf("session record should be retained: %v", err)
	}
	if !stored.SignedOut() {
		t.Fatalf("deleted user's session should be signed out")
	}
}

func TestDeleteUser_EmitsAuditEvent(t *testing.T) {
	env := newTestEnv()
	admin := env.register(t, "root", "pw0")
	env.users.setRole(admin.ID, domain.RoleAdmin)
	adminSession := env.signIn(t, "root", "pw0")
	bob := env.register(t, "bob", "pw2")

	if _, err := env.userSvc.DeleteUser(context.Background(), adminSession.Token, bob.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	var found bool
	for _, e := range env.audit.events {
		if e.Action == "user.deleted" && e.TargetID == bob.ID && e.ActorID == admin.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a user.deleted audit event, got %+v", env.audit.events)
	}
}
