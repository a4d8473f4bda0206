package httptransport

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCookieName carries the signed BFF session id.
const SessionCookieName = "assetdesk_session"

// SessionSigner issues the signed cookie value for a session id.
type SessionSigner interface {
	GenerateSessionToken(sessionID string, expiresIn time.Duration) (string, error)
}

// Cookies issues and clears the session cookie.
type Cookies struct {
	Signer SessionSigner
	TTL    time.Duration
	Secure bool
}

// newSessionID mints the id a sign-in binds to. Every sign-in gets a fresh
// one so a pre-login cookie can never be promoted.
func newSessionID() string {
	return uuid.NewString()
}

// issue sets the cookie. A non-persistent cookie ends with the browser
// session; the signed token still expires after TTL.
func (c Cookies) issue(w http.ResponseWriter, sessionID string, persistent bool) error {
	value, err := c.Signer.GenerateSessionToken(sessionID, c.TTL)
	if err != nil {
		return err
	}
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if persistent {
		cookie.MaxAge = int(c.TTL.Seconds())
	}
	http.SetCookie(w, cookie)
	return nil
}

func (c Cookies) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
