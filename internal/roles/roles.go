// Package roles decides whether a guarded page subtree may render for the
// current session.
package roles

import (
	"context"
	"log/slog"
	"net/http"

	"assetdesk/internal/profile"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/httputil"
	"assetdesk/pkg/requestcontext"
)

// Outcome of a routing decision.
type Outcome int

const (
	Render Outcome = iota
	Redirect
)

// Decision says whether to render, and where to go otherwise.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Subject is what the guard knows about the session.
type Subject struct {
	Authenticated bool
	// Role is the cached role as stored, before normalization.
	Role string
}

// Decide is a pure function of the session state and the subtree's role.
//
// Unauthenticated sessions go to the login page. A role that is neither HR nor
// Employee goes to the generic home. A known role that does not match goes to
// its own home.
func Decide(authenticated bool, role string, required profile.Role) Decision {
	if !authenticated {
		return Decision{Outcome: Redirect, Location: profile.LoginPath}
	}
	actual, ok := profile.ParseRole(role)
	if !ok {
		return Decision{Outcome: Redirect, Location: profile.GenericHomePath}
	}
	if actual != required {
		return Decision{Outcome: Redirect, Location: profile.HomeFor(actual)}
	}
	return Decision{Outcome: Render}
}

// Resolver looks up the subject for a session id. An empty id is anonymous.
type Resolver interface {
	Resolve(ctx context.Context, sessionID string) Subject
}

// Guard only lets requests through whose session holds the required role.
// Others get a failure envelope naming where the browser should go.
func Guard(required profile.Role, resolver Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			subject := resolver.Resolve(ctx, requestcontext.SessionID(ctx))

			decision := Decide(subject.Authenticated, subject.Role, required)
			if decision.Outcome == Render {
				next.ServeHTTP(w, r)
				return
			}

			logger.DebugContext(ctx, "guard redirect",
				"path", r.URL.Path,
				"required", required,
				"location", decision.Location,
				"request_id", requestcontext.RequestID(ctx),
			)
			if !subject.Authenticated {
				httputil.WriteRedirect(w, dErrors.New(dErrors.CodeUnauthorized, "sign in required"), decision.Location)
				return
			}
			httputil.WriteRedirect(w, dErrors.New(dErrors.CodeForbidden, "this page belongs to another role"), decision.Location)
		})
	}
}
