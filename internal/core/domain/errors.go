package domain

import (
	"errors"
	"fmt"
)

// ErrKind classifies a domain failure. Kinds drive the HTTP status mapping in
// the API layer; the Code carried alongside is the stable wire-level code.
type ErrKind int

const (
	// KindUnauthenticated: no session exists for the presented token.
	KindUnauthenticated ErrKind = iota + 1
	// KindSignedOut: the session exists but a logout has been recorded.
	KindSignedOut
	// KindForbidden: the principal lacks ownership or the required role.
	KindForbidden
	// KindNotFound: user, question or answer does not exist.
	KindNotFound
	// KindConflict: duplicate username or email at registration.
	KindConflict
	// KindBadCredential: unknown username or wrong password at sign-in.
	KindBadCredential
	// KindNotSignedIn: sign-out presented a token with no session behind it.
	KindNotSignedIn
)

// Stable error codes surfaced to API clients. These are part of the public
// contract and must not change.
const (
	CodeNotSignedIn      = "ATHR-001"
	CodeSignedOut        = "ATHR-002"
	CodeForbidden        = "ATHR-003"
	CodeUnknownUser      = "ATH-001"
	CodeBadPassword      = "ATH-002"
	CodeSignupRestricted = "SGR-001" // also used for sign-out without a session
	CodeDuplicateEmail   = "SGR-002"
	CodeUserNotFound     = "USR-001"
	CodeQuestionNotFound = "QUES-001"
	CodeAnswerNotFound   = "ANS-001"
)

// Error is a tagged, terminal domain failure. These are expected outcomes
// (bad token, missing resource, denied action), returned as values rather
// than panics, and are never retried or recovered internally.
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// Is lets errors.Is match two domain errors by kind and code, so call sites
// can compare against a prototype without caring about the human message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

func newErr(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// ErrNotSignedIn is returned when a token has no session behind it.
func ErrNotSignedIn() *Error {
	return newErr(KindUnauthenticated, CodeNotSignedIn, "User has not signed in")
}

// ErrSignedOut is returned when the session behind a token has been signed
// out. The action suffix varies by calling context ("post a question",
// "delete an answer", ...); the code stays uniform.
func ErrSignedOut(action string) *Error {
	msg := "User is signed out"
	if action != "" {
		msg += ".Sign in first to " + action
	}
	return newErr(KindSignedOut, CodeSignedOut, msg)
}

// ErrForbidden is returned when the authorization guard denies an action.
func ErrForbidden(msg string) *Error {
	return newErr(KindForbidden, CodeForbidden, msg)
}

// ErrUnknownUsername is returned by sign-in for an unregistered username.
func ErrUnknownUsername() *Error {
	return newErr(KindBadCredential, CodeUnknownUser, "User with email not found")
}

// ErrBadPassword is returned by sign-in when the password does not match.
func ErrBadPassword() *Error {
	return newErr(KindBadCredential, CodeBadPassword, "Password Failed")
}

// ErrDuplicateUsername is returned by registration for a taken username.
func ErrDuplicateUsername() *Error {
	return newErr(KindConflict, CodeSignupRestricted,
		"Try any other Username, this Username has already been taken")
}

// ErrDuplicateEmail is returned by registration for a registered email.
func ErrDuplicateEmail() *Error {
	return newErr(KindConflict, CodeDuplicateEmail,
		"This user has already been registered, try with any other emailId")
}

// ErrSignOutNoSession is returned by sign-out for an unknown token.
func ErrSignOutNoSession() *Error {
	return newErr(KindNotSignedIn, CodeSignupRestricted, "User is not Signed in")
}

// ErrUserNotFound is returned when a user id resolves to nothing.
func ErrUserNotFound(msg string) *Error {
	return newErr(KindNotFound, CodeUserNotFound, msg)
}

// ErrQuestionNotFound is returned when a question id resolves to nothing.
func ErrQuestionNotFound(msg string) *Error {
	return newErr(KindNotFound, CodeQuestionNotFound, msg)
}

// ErrAnswerNotFound is returned when an answer id resolves to nothing.
func ErrAnswerNotFound() *Error {
	return newErr(KindNotFound, CodeAnswerNotFound, "Entered answer uuid does not exist")
}

// Store-level absence and constraint sentinels. Repositories return these;
// services translate them into the coded errors above, with the message
// appropriate to the operation. They never reach API clients directly.
var (
	ErrNoUser       = errors.New("user not found")
	ErrNoSession    = errors.New("session not found")
	ErrNoQuestion   = errors.New("question not found")
	ErrNoAnswer     = errors.New("answer not found")
	ErrDuplicateKey = errors.New("duplicate key")

	// The user store reports which unique index fired so registration can
	// pick the matching code. Both match ErrDuplicateKey under errors.Is.
	ErrUsernameTaken = fmt.Errorf("username: %w", ErrDuplicateKey)
	ErrEmailTaken    = fmt.Errorf("email: %w", ErrDuplicateKey)
)
