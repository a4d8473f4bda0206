package portal

import (
	"context"
	"log/slog"

	"assetdesk/internal/gateway"
	"assetdesk/internal/profile"
	dErrors "assetdesk/pkg/domain-errors"
)

// HR serves the company administrator's pages.
type HR struct {
	backend Backend
	logger  *slog.Logger
}

func NewHR(backend Backend, opts ...Option) *HR {
	o := buildOptions(opts)
	return &HR{backend: backend, logger: o.logger}
}

func (h *HR) Assets(ctx context.Context, query gateway.AssetQuery) (gateway.Page[gateway.Asset], error) {
	p := Paging{query.Page, query.Limit}.normalized()
	query.Page, query.Limit = p.Page, p.Limit
	return h.backend.ListAssets(ctx, query)
}

func (h *HR) CreateAsset(ctx context.Context, in gateway.AssetInput, view gateway.AssetQuery) (gateway.Page[gateway.Asset], error) {
	if err := validateAsset(&in); err != nil {
		return gateway.Page[gateway.Asset]{}, err
	}
	created, err := h.backend.CreateAsset(ctx, in)
	if err != nil {
		return gateway.Page[gateway.Asset]{}, err
	}
	logMutation(ctx, h.logger, "asset_created", created.ID)
	return h.Assets(ctx, view)
}

func (h *HR) UpdateAsset(ctx context.Context, id string, in gateway.AssetInput, view gateway.AssetQuery) (gateway.Page[gateway.Asset], error) {
	if err := requireID(id, "Asset"); err != nil {
		return gateway.Page[gateway.Asset]{}, err
	}
	if err := validateAsset(&in); err != nil {
		return gateway.Page[gateway.Asset]{}, err
	}
	if _, err := h.backend.UpdateAsset(ctx, id, in); err != nil {
		return gateway.Page[gateway.Asset]{}, err
	}
	logMutation(ctx, h.logger, "asset_updated", id)
	return h.Assets(ctx, view)
}

func (h *HR) DeleteAsset(ctx context.Context, id string, view gateway.AssetQuery) (gateway.Page[gateway.Asset], error) {
	if err := requireID(id, "Asset"); err != nil {
		return gateway.Page[gateway.Asset]{}, err
	}
	if err := h.backend.DeleteAsset(ctx, id); err != nil {
		return gateway.Page[gateway.Asset]{}, err
	}
	logMutation(ctx, h.logger, "asset_deleted", id)
	return h.Assets(ctx, view)
}

func (h *HR) Requests(ctx context.Context, query gateway.RequestQuery) (gateway.Page[gateway.AssetRequest], error) {
	p := Paging{query.Page, query.Limit}.normalized()
	query.Page, query.Limit = p.Page, p.Limit
	return h.backend.ListRequests(ctx, query)
}

// DecideRequest approves or rejects a pending request.
func (h *HR) DecideRequest(ctx context.Context, id string, status gateway.RequestStatus, view gateway.RequestQuery) (gateway.Page[gateway.AssetRequest], error) {
	if err := requireID(id, "Request"); err != nil {
		return gateway.Page[gateway.AssetRequest]{}, err
	}
	if status != gateway.RequestAccepted && status != gateway.RequestRejected {
		return gateway.Page[gateway.AssetRequest]{}, dErrors.New(dErrors.CodeValidation, "A request can only be accepted or rejected.")
	}
	if _, err := h.backend.UpdateRequestStatus(ctx, id, status); err != nil {
		return gateway.Page[gateway.AssetRequest]{}, err
	}
	logMutation(ctx, h.logger, "request_"+string(status), id)
	return h.Requests(ctx, view)
}

func (h *HR) Employees(ctx context.Context, paging Paging) (gateway.Page[gateway.EmployeeSummary], error) {
	p := paging.normalized()
	return h.backend.ListEmployees(ctx, p.Page, p.Limit)
}

func (h *HR) RemoveEmployee(ctx context.Context, id string, view Paging) (gateway.Page[gateway.EmployeeSummary], error) {
	if err := requireID(id, "Employee"); err != nil {
		return gateway.Page[gateway.EmployeeSummary]{}, err
	}
	if err := h.backend.RemoveEmployee(ctx, id); err != nil {
		return gateway.Page[gateway.EmployeeSummary]{}, err
	}
	logMutation(ctx, h.logger, "employee_removed", id)
	return h.Employees(ctx, view)
}

// Candidates lists staff accounts the manager could add to the company.
func (h *HR) Candidates(ctx context.Context, query gateway.UserQuery) (gateway.Page[profile.Record], error) {
	p := Paging{query.Page, query.Limit}.normalized()
	query.Page, query.Limit = p.Page, p.Limit
	query.Role = string(profile.RoleEmployee)
	return h.backend.ListUsers(ctx, query)
}

// AssignedAssets lists assignments across the company.
func (h *HR) AssignedAssets(ctx context.Context, query gateway.EmployeeAssetQuery) (gateway.Page[gateway.EmployeeAsset], error) {
	p := Paging{query.Page, query.Limit}.normalized()
	query.Page, query.Limit = p.Page, p.Limit
	return h.backend.ListEmployeeAssets(ctx, query)
}

func (h *HR) RevokeAssignment(ctx context.Context, id string, view gateway.EmployeeAssetQuery) (gateway.Page[gateway.EmployeeAsset], error) {
	if err := requireID(id, "Assignment"); err != nil {
		return gateway.Page[gateway.EmployeeAsset]{}, err
	}
	if err := h.backend.DeleteEmployeeAsset(ctx, id); err != nil {
		return gateway.Page[gateway.EmployeeAsset]{}, err
	}
	logMutation(ctx, h.logger, "assignment_revoked", id)
	return h.AssignedAssets(ctx, view)
}

func (h *HR) Packages(ctx context.Context) ([]gateway.Package, error) {
	return h.backend.ListPackages(ctx)
}

func (h *HR) Payments(ctx context.Context, paging Paging) (gateway.Page[gateway.PaymentRecord], error) {
	p := paging.normalized()
	return h.backend.PaymentHistory(ctx, p.Page, p.Limit)
}

func (h *HR) DeletePayment(ctx context.Context, id string, view Paging) (gateway.Page[gateway.PaymentRecord], error) {
	if err := requireID(id, "Payment"); err != nil {
		return gateway.Page[gateway.PaymentRecord]{}, err
	}
	if err := h.backend.DeletePayment(ctx, id); err != nil {
		return gateway.Page[gateway.PaymentRecord]{}, err
	}
	logMutation(ctx, h.logger, "payment_deleted", id)
	return h.Payments(ctx, view)
}
