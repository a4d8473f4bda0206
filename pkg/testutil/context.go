package testutil

import (
	"net/http"

	"assetdesk/pkg/requestcontext"
)

// WithSessionID attaches a session identifier the way the session cookie
// middleware would for an authenticated request.
func WithSessionID(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(requestcontext.WithSessionID(req.Context(), sessionID))
}
