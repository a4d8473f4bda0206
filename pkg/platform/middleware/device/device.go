// Package device derives a coarse, human-readable device label from the
// User-Agent for audit events and session listings.
package device

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type contextKeyLabel struct{}

// Label summarises a User-Agent as "Browser on OS", with a "(mobile)" or
// "(bot)" suffix when applicable. Empty input yields "unknown".
func Label(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "unknown"
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OS()

	var b strings.Builder
	if browser == "" {
		browser = "unknown browser"
	}
	b.WriteString(browser)
	if os != "" {
		b.WriteString(" on ")
		b.WriteString(os)
	}
	switch {
	case ua.Bot():
		b.WriteString(" (bot)")
	case ua.Mobile():
		b.WriteString(" (mobile)")
	}
	return b.String()
}

// Middleware stores the device label in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithLabel(r.Context(), Label(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLabel retrieves the device label from the context.
func GetLabel(ctx context.Context) string {
	if label, ok := ctx.Value(contextKeyLabel{}).(string); ok {
		return label
	}
	return ""
}

// WithLabel injects a device label into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithLabel(ctx context.Context, label string) context.Context {
	return context.WithValue(ctx, contextKeyLabel{}, label)
}
