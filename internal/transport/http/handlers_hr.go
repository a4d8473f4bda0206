package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"assetdesk/internal/gateway"
	"assetdesk/pkg/platform/httputil"
	authmw "assetdesk/pkg/platform/middleware/auth"
	"assetdesk/pkg/requestcontext"
)

type HRHandler struct {
	hr     HRService
	logger *slog.Logger
}

func NewHRHandler(hr HRService, logger *slog.Logger) *HRHandler {
	return &HRHandler{hr: hr, logger: logger}
}

// Register mounts the HR routes. The caller applies the role guard.
func (h *HRHandler) Register(r chi.Router) {
	r.Route("/hr", func(r chi.Router) {
		r.Get("/assets", h.HandleListAssets)
		r.Post("/assets", h.HandleCreateAsset)
		r.Put("/assets/{id}", h.HandleUpdateAsset)
		r.Delete("/assets/{id}", h.HandleDeleteAsset)

		r.Get("/requests", h.HandleListRequests)
		r.Patch("/requests/{id}", h.HandleDecideRequest)

		r.Get("/employees", h.HandleListEmployees)
		r.Delete("/employees/{id}", h.HandleRemoveEmployee)
		r.Get("/employees/candidates", h.HandleListCandidates)
		r.Get("/employees/assets", h.HandleListAssigned)
		r.Delete("/employees/assets/{id}", h.HandleRevokeAssignment)

		r.Get("/payments", h.HandleListPayments)
		r.Delete("/payments/{id}", h.HandleDeletePayment)
	})
}

// HandlePackages is public: the HR registration form lists plans.
func (h *HRHandler) HandlePackages(w http.ResponseWriter, r *http.Request) {
	plans, err := h.hr.Packages(r.Context())
	h.respond(w, r, http.StatusOK, plans, err)
}

func (h *HRHandler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.Assets(r.Context(), assetQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var in gateway.AssetInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := h.hr.CreateAsset(r.Context(), in, assetQueryFrom(r))
	h.respond(w, r, http.StatusCreated, page, err)
}

func (h *HRHandler) HandleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var in gateway.AssetInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := h.hr.UpdateAsset(r.Context(), chi.URLParam(r, "id"), in, assetQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.DeleteAsset(r.Context(), chi.URLParam(r, "id"), assetQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.Requests(r.Context(), requestQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleDecideRequest(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := h.hr.DecideRequest(r.Context(), chi.URLParam(r, "id"), req.Status, requestQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.Employees(r.Context(), pagingFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleRemoveEmployee(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.RemoveEmployee(r.Context(), chi.URLParam(r, "id"), pagingFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleListCandidates(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.Candidates(r.Context(), userQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleListAssigned(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.AssignedAssets(r.Context(), employeeAssetQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleRevokeAssignment(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.RevokeAssignment(r.Context(), chi.URLParam(r, "id"), employeeAssetQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleListPayments(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.Payments(r.Context(), pagingFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) HandleDeletePayment(w http.ResponseWriter, r *http.Request) {
	page, err := h.hr.DeletePayment(r.Context(), chi.URLParam(r, "id"), pagingFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *HRHandler) respond(w http.ResponseWriter, r *http.Request, status int, data any, err error) {
	if err != nil {
		writePortalError(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, status, data)
}

// writePortalError turns an expired backend session into a redirect to the
// login page. The gateway has already cleared the session state.
func writePortalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	ctx := r.Context()
	if gateway.IsSessionExpired(err) {
		logger.InfoContext(ctx, "backend session expired",
			"path", r.URL.Path,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteRedirect(w, err, authmw.LoginPath)
		return
	}
	logger.WarnContext(ctx, "portal request failed",
		"path", r.URL.Path,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
