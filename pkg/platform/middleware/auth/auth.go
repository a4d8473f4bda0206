// Package auth resolves the browser session cookie into a session identifier
// on the request context.
package auth

import (
	"log/slog"
	"net/http"

	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/httputil"
	request "assetdesk/pkg/platform/middleware/request"
	"assetdesk/pkg/requestcontext"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// SessionValidator validates the signed cookie value.
type SessionValidator interface {
	ValidateSession(tokenString string) (*SessionClaims, error)
}

// SessionClaims represents the claims we expect from the validator.
type SessionClaims struct {
	SessionID string
}

// LoadSession attaches the session id when the cookie is present and valid,
// and otherwise lets the request through anonymously. Public routes that
// behave differently for signed-in users use this.
func LoadSession(cookieName string, validator SessionValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := validator.ValidateSession(cookie.Value)
			if err != nil {
				ctx := r.Context()
				logger.DebugContext(ctx, "ignoring invalid session cookie",
					"error", err,
					"request_id", request.GetRequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := requestcontext.WithSessionID(r.Context(), claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests without a loaded session with 401 and a
// redirect to the login page. It must run after LoadSession.
func RequireSession(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if requestcontext.SessionID(ctx) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing session",
					"path", r.URL.Path,
					"request_id", request.GetRequestID(ctx),
				)
				httputil.WriteRedirect(w, dErrors.New(dErrors.CodeUnauthorized, "sign in required"), LoginPath)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
