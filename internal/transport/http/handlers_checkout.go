package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"assetdesk/internal/checkout"
	"assetdesk/pkg/platform/httputil"
	"assetdesk/pkg/requestcontext"
)

type CheckoutHandler struct {
	checkout CheckoutService
	logger   *slog.Logger
}

func NewCheckoutHandler(checkout CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, logger: logger}
}

// Register mounts the checkout routes. The caller applies the HR guard.
func (h *CheckoutHandler) Register(r chi.Router) {
	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", h.HandleState)
		r.Post("/start", h.HandleStart)
		r.Post("/continue", h.HandleContinue)
		r.Post("/pay", h.HandlePay)
		r.Post("/verify", h.HandleVerify)
		r.Post("/reset", h.HandleReset)
	})
}

func (h *CheckoutHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := h.checkout.State(ctx, requestcontext.SessionID(ctx))
	h.respond(w, r, state, err)
}

func (h *CheckoutHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req startCheckoutRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := h.checkout.Start(ctx, requestcontext.SessionID(ctx), req.PackageID)
	h.respond(w, r, state, err)
}

func (h *CheckoutHandler) HandleContinue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state, err := h.checkout.Continue(ctx, requestcontext.SessionID(ctx))
	h.respond(w, r, state, err)
}

// HandlePay writes the failure when a charge fails. The flow is then in the
// error step and GET /checkout returns it with the entered card kept.
func (h *CheckoutHandler) HandlePay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req payRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := h.checkout.Pay(ctx, requestcontext.SessionID(ctx), req.card())
	h.respond(w, r, state, err)
}

func (h *CheckoutHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req verifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := h.checkout.Verify(ctx, requestcontext.SessionID(ctx), req.SessionID)
	h.respond(w, r, state, err)
}

func (h *CheckoutHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.checkout.Reset(ctx, requestcontext.SessionID(ctx)); err != nil {
		writePortalError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CheckoutHandler) respond(w http.ResponseWriter, r *http.Request, state checkout.State, err error) {
	if err != nil {
		writePortalError(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}
