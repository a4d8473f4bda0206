// Package identity is the port to the external identity provider that owns
// credentials. Adapters live in sub-packages.
package identity

import (
	"context"
	"errors"
)

// Principal is the provider's view of a signed-in user.
type Principal struct {
	UserID       string
	SessionID    string
	SessionToken string
	Email        string
	Name         string
	PhotoURL     string
}

// SessionChange is emitted after every provider session transition. Principal
// is nil when the session ended. SessionID is the BFF session the transition
// happened in, taken from the request context.
type SessionChange struct {
	SessionID string
	Principal *Principal
}

// Listener receives session changes synchronously.
type Listener func(ctx context.Context, change SessionChange)

// Provider signs users in and out. Implementations return *Error for failures
// the user can act on.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Principal, error)
	CreateAccount(ctx context.Context, email, password string) (Principal, error)
	UpdateProfile(ctx context.Context, sessionToken, name, photoURL string) (Principal, error)
	SignOut(ctx context.Context, sessionToken string) error
	// Refresh checks that the provider session behind sessionToken is still
	// live. A dead session yields ErrNoSession.
	Refresh(ctx context.Context, sessionToken string) (Principal, error)
	OnSessionChange(fn Listener) (unsubscribe func())
}

// ErrNoSession reports that the provider holds no live session for a token.
var ErrNoSession = errors.New("no provider session")

// Code is the fixed set of provider failures surfaced to users.
type Code string

const (
	CodeAccountNotFound  Code = "account_not_found"
	CodeWrongCredential  Code = "wrong_credential"
	CodeInvalidEmail     Code = "invalid_email"
	CodeDuplicateAccount Code = "duplicate_account"
	CodeWeakCredential   Code = "weak_credential"
	CodeGeneric          Code = "generic"
)

var messages = map[Code]string{
	CodeAccountNotFound:  "No account found with this email.",
	CodeWrongCredential:  "Incorrect password. Please try again.",
	CodeInvalidEmail:     "Please enter a valid email address.",
	CodeDuplicateAccount: "An account with this email already exists.",
	CodeWeakCredential:   "Password should be at least 6 characters.",
	CodeGeneric:          "Something went wrong. Please try again.",
}

// Message returns the user-facing text for code. Unknown codes get the
// generic message.
func Message(code Code) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[CodeGeneric]
}

// Error is a classified provider failure.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message is the user-facing text for the error's code.
func (e *Error) Message() string {
	return Message(e.Code)
}

// CodeOf extracts the provider code from err, CodeGeneric if err is not an
// *Error.
func CodeOf(err error) Code {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code
	}
	return CodeGeneric
}

// Listeners is a registry of session change listeners that adapters embed.
type Listeners struct {
	reg registry
}

// OnSessionChange registers fn.
func (l *Listeners) OnSessionChange(fn Listener) func() {
	return l.reg.add(fn)
}

// Notify calls every registered listener.
func (l *Listeners) Notify(ctx context.Context, change SessionChange) {
	for _, fn := range l.reg.snapshot() {
		fn(ctx, change)
	}
}
