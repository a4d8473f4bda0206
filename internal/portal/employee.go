package portal

import (
	"context"
	"log/slog"
	"strings"

	"assetdesk/internal/gateway"
)

// Employee serves the staff member's pages. The backend scopes every list to
// the caller's bearer token.
type Employee struct {
	backend Backend
	logger  *slog.Logger
}

func NewEmployee(backend Backend, opts ...Option) *Employee {
	o := buildOptions(opts)
	return &Employee{backend: backend, logger: o.logger}
}

// Assets lists the assets assigned to the caller.
func (e *Employee) Assets(ctx context.Context, query gateway.EmployeeAssetQuery) (gateway.Page[gateway.EmployeeAsset], error) {
	p := Paging{query.Page, query.Limit}.normalized()
	query.Page, query.Limit = p.Page, p.Limit
	return e.backend.ListEmployeeAssets(ctx, query)
}

func (e *Employee) ReturnAsset(ctx context.Context, id string, view gateway.EmployeeAssetQuery) (gateway.Page[gateway.EmployeeAsset], error) {
	if err := requireID(id, "Assignment"); err != nil {
		return gateway.Page[gateway.EmployeeAsset]{}, err
	}
	if err := e.backend.ReturnEmployeeAsset(ctx, id); err != nil {
		return gateway.Page[gateway.EmployeeAsset]{}, err
	}
	logMutation(ctx, e.logger, "asset_returned", id)
	return e.Assets(ctx, view)
}

// Requestable lists company assets with stock left.
func (e *Employee) Requestable(ctx context.Context, query gateway.AssetQuery) (gateway.Page[gateway.Asset], error) {
	p := Paging{query.Page, query.Limit}.normalized()
	query.Page, query.Limit = p.Page, p.Limit
	if query.Stock == "" {
		query.Stock = "available"
	}
	return e.backend.ListAssets(ctx, query)
}

func (e *Employee) Requests(ctx context.Context, query gateway.RequestQuery) (gateway.Page[gateway.AssetRequest], error) {
	p := Paging{query.Page, query.Limit}.normalized()
	query.Page, query.Limit = p.Page, p.Limit
	return e.backend.ListRequests(ctx, query)
}

func (e *Employee) RequestAsset(ctx context.Context, in gateway.NewAssetRequest, view gateway.RequestQuery) (gateway.Page[gateway.AssetRequest], error) {
	if err := requireID(in.AssetID, "Asset"); err != nil {
		return gateway.Page[gateway.AssetRequest]{}, err
	}
	in.Note = strings.TrimSpace(in.Note)
	created, err := e.backend.CreateRequest(ctx, in)
	if err != nil {
		return gateway.Page[gateway.AssetRequest]{}, err
	}
	logMutation(ctx, e.logger, "request_created", created.ID)
	return e.Requests(ctx, view)
}
