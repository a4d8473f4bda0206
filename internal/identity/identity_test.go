package identity

//go:generate mockgen -source=identity.go -destination=mocks/mocks.go -package=mocks Provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	assert.Equal(t, "An account with this email already exists.", Message(CodeDuplicateAccount))
	assert.Equal(t, Message(CodeGeneric), Message(Code("made_up")))
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("sign in: %w", &Error{Code: CodeWeakCredential})
	assert.Equal(t, CodeWeakCredential, CodeOf(wrapped))
	assert.Equal(t, CodeGeneric, CodeOf(errors.New("boom")))
}

func TestListeners(t *testing.T) {
	var l Listeners
	var calls int
	stop := l.OnSessionChange(func(context.Context, SessionChange) { calls++ })

	l.Notify(context.Background(), SessionChange{SessionID: "s1"})
	stop()
	l.Notify(context.Background(), SessionChange{SessionID: "s1"})

	assert.Equal(t, 1, calls)
}
