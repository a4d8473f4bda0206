package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"assetdesk/pkg/requestcontext"
	"assetdesk/pkg/testutil"
)

const cookieName = "assetdesk_session"

type stubValidator map[string]string

func (s stubValidator) ValidateSession(token string) (*SessionClaims, error) {
	if sid, ok := s[token]; ok {
		return &SessionClaims{SessionID: sid}, nil
	}
	return nil, errors.New("invalid")
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func chain(v SessionValidator, h http.Handler) http.Handler {
	return LoadSession(cookieName, v, discard())(RequireSession(discard())(h))
}

func TestRequireSession(t *testing.T) {
	validator := stubValidator{"good": "sess-1"}

	t.Run("valid cookie reaches handler with session id", func(t *testing.T) {
		var sid string
		h := chain(validator, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			sid = requestcontext.SessionID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/hr/assets", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "good"})
		rr := testutil.DoRequest(h, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "sess-1", sid)
	})

	t.Run("missing cookie redirects to login", func(t *testing.T) {
		h := chain(validator, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))

		rr := testutil.DoRequest(h, httptest.NewRequest(http.MethodGet, "/hr/assets", nil))
		testutil.AssertRedirect(t, rr, http.StatusUnauthorized, "/login")
	})

	t.Run("tampered cookie redirects to login", func(t *testing.T) {
		h := chain(validator, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/hr/assets", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "forged"})
		rr := testutil.DoRequest(h, req)
		testutil.AssertRedirect(t, rr, http.StatusUnauthorized, "/login")
	})
}

func TestLoadSession_AnonymousPassThrough(t *testing.T) {
	called := false
	h := LoadSession(cookieName, stubValidator{}, discard())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		called = true
		assert.Empty(t, requestcontext.SessionID(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/packages", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "junk"})
	testutil.DoRequest(h, req)
	assert.True(t, called)
}
