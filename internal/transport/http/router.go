package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"assetdesk/internal/platform/metrics"
	"assetdesk/internal/profile"
	"assetdesk/internal/roles"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/httputil"
	authmw "assetdesk/pkg/platform/middleware/auth"
	"assetdesk/pkg/platform/middleware/device"
	"assetdesk/pkg/platform/middleware/metadata"
	request "assetdesk/pkg/platform/middleware/request"
	"assetdesk/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RouterConfig holds the cross-cutting pieces of the HTTP surface.
type RouterConfig struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Sessions authmw.SessionValidator
	Resolver roles.Resolver
	// Throttle wraps login and registration.
	Throttle func(http.Handler) http.Handler
	Health   map[string]HealthCheck
}

// Handlers groups the route handlers.
type Handlers struct {
	Auth     *AuthHandler
	HR       *HRHandler
	Employee *EmployeeHandler
	Checkout *CheckoutHandler
}

// NewRouter wires the public routes and the role-guarded HR and employee
// subtrees.
func NewRouter(cfg RouterConfig, h Handlers) http.Handler {
	throttle := cfg.Throttle
	if throttle == nil {
		throttle = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.Logger(cfg.Logger))
	r.Use(metadata.ClientMetadata)
	r.Use(device.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(cfg.Metrics.Middleware)
	r.Use(authmw.LoadSession(SessionCookieName, cfg.Sessions, cfg.Logger))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "method not allowed"))
	})

	r.Get("/healthz", healthHandler(cfg.Health))
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.Gatherer))
	}
	r.Get("/packages", h.HR.HandlePackages)

	h.Auth.Register(r, throttle)

	r.Group(func(r chi.Router) {
		r.Use(roles.Guard(profile.RoleHR, cfg.Resolver, cfg.Logger))
		h.HR.Register(r)
		h.Checkout.Register(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(roles.Guard(profile.RoleEmployee, cfg.Resolver, cfg.Logger))
		h.Employee.Register(r)
	})
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		res := healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				res.Status = "degraded"
				res.Checks[name] = err.Error()
				continue
			}
			res.Checks[name] = "ok"
		}
		status := http.StatusOK
		if res.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, res)
	}
}
