package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"assetdesk/internal/gateway"
	"assetdesk/pkg/platform/httputil"
)

type EmployeeHandler struct {
	employee EmployeeService
	logger   *slog.Logger
}

func NewEmployeeHandler(employee EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{employee: employee, logger: logger}
}

// Register mounts the employee routes. The caller applies the role guard.
func (h *EmployeeHandler) Register(r chi.Router) {
	r.Route("/employee", func(r chi.Router) {
		r.Get("/assets", h.HandleListAssets)
		r.Get("/assets/requestable", h.HandleListRequestable)
		r.Post("/assets/{id}/return", h.HandleReturnAsset)

		r.Get("/requests", h.HandleListRequests)
		r.Post("/requests", h.HandleRequestAsset)
	})
}

func (h *EmployeeHandler) HandleListAssets(w http.ResponseWriter, r *http.Request) {
	page, err := h.employee.Assets(r.Context(), employeeAssetQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *EmployeeHandler) HandleListRequestable(w http.ResponseWriter, r *http.Request) {
	page, err := h.employee.Requestable(r.Context(), assetQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *EmployeeHandler) HandleReturnAsset(w http.ResponseWriter, r *http.Request) {
	page, err := h.employee.ReturnAsset(r.Context(), chi.URLParam(r, "id"), employeeAssetQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *EmployeeHandler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	page, err := h.employee.Requests(r.Context(), requestQueryFrom(r))
	h.respond(w, r, http.StatusOK, page, err)
}

func (h *EmployeeHandler) HandleRequestAsset(w http.ResponseWriter, r *http.Request) {
	var in gateway.NewAssetRequest
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.WriteError(w, err)
		return
	}
	page, err := h.employee.RequestAsset(r.Context(), in, requestQueryFrom(r))
	h.respond(w, r, http.StatusCreated, page, err)
}

func (h *EmployeeHandler) respond(w http.ResponseWriter, r *http.Request, status int, data any, err error) {
	if err != nil {
		writePortalError(w, r, h.logger, err)
		return
	}
	httputil.WriteJSON(w, status, data)
}
