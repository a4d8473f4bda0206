package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"assetdesk/internal/auth"
	"assetdesk/internal/profile"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/httputil"
	authmw "assetdesk/pkg/platform/middleware/auth"
	"assetdesk/pkg/requestcontext"
)

type AuthHandler struct {
	auth    AuthService
	cookies Cookies
	logger  *slog.Logger
}

func NewAuthHandler(auth AuthService, cookies Cookies, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies, logger: logger}
}

// Register mounts the auth routes. throttle wraps the credential endpoints.
func (h *AuthHandler) Register(r chi.Router, throttle func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.With(throttle).Post("/login", h.HandleLogin)
		r.With(throttle).Post("/register/employee", h.registerAs(profile.RoleEmployee))
		r.With(throttle).Post("/register/hr", h.registerAs(profile.RoleHR))
		r.Post("/logout", h.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireSession(h.logger))
			r.Get("/me", h.HandleMe)
			r.Patch("/me", h.HandleUpdateMe)
			r.Get("/me/activity", h.HandleActivity)
		})
	})
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req loginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	sessionID := newSessionID()
	res, err := h.auth.Login(ctx, sessionID, req.credentials())
	if err != nil {
		h.logger.InfoContext(ctx, "login failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	if err := h.cookies.issue(w, sessionID, req.Remember); err != nil {
		h.writeCookieFailure(ctx, w, sessionID, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toSignedInResponse(res))
}

func (h *AuthHandler) registerAs(role profile.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req registerRequest
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}

		sessionID := newSessionID()
		res, err := h.auth.Register(ctx, sessionID, role, req.registration())
		if err != nil {
			h.logger.InfoContext(ctx, "registration failed",
				"role", role,
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			httputil.WriteError(w, err)
			return
		}
		if len(res.Degraded) > 0 {
			h.logger.WarnContext(ctx, "registration completed with degraded steps",
				"role", role,
				"degraded", res.Degraded,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
		if err := h.cookies.issue(w, sessionID, true); err != nil {
			h.writeCookieFailure(ctx, w, sessionID, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, toSignedInResponse(res))
	}
}

// HandleLogout always clears the cookie, even when the server-side session
// is already gone.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := requestcontext.SessionID(ctx)
	if err := h.auth.Logout(ctx, sessionID); err != nil {
		h.logger.ErrorContext(ctx, "logout failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	h.cookies.clear(w)
	httputil.WriteJSON(w, http.StatusOK, signedOutResponse{RedirectTo: authmw.LoginPath})
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.auth.Current(ctx, requestcontext.SessionID(ctx))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *AuthHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req profileRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.auth.UpdateProfile(ctx, requestcontext.SessionID(ctx), req.changes())
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(p))
}

// HandleActivity lists the caller's own audit trail. ?limit= caps the page.
func (h *AuthHandler) HandleActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	events, err := h.auth.Activity(ctx, requestcontext.SessionID(ctx), intParam(r, "limit"))
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toActivityResponse(events))
}

// writeSessionError sends the browser to the login page when the session is
// gone and to the generic home when the account type has no profile pages.
func (h *AuthHandler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case dErrors.HasCode(err, dErrors.CodeUnauthorized):
		h.cookies.clear(w)
		httputil.WriteRedirect(w, err, authmw.LoginPath)
	case errors.Is(err, auth.ErrUnsupportedRole):
		httputil.WriteRedirect(w, err, profile.GenericHomePath)
	default:
		httputil.WriteError(w, err)
	}
}

// writeCookieFailure undoes a sign-in whose cookie could not be issued so no
// orphaned session is left behind.
func (h *AuthHandler) writeCookieFailure(ctx context.Context, w http.ResponseWriter, sessionID string, err error) {
	h.logger.ErrorContext(ctx, "failed to issue session cookie",
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	if logoutErr := h.auth.Logout(ctx, sessionID); logoutErr != nil {
		h.logger.ErrorContext(ctx, "failed to discard session after cookie failure",
			"error", logoutErr,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session"))
}
