// Package portal serves the HR and employee pages. The backend owns all of
// this data: every mutation is followed by a re-fetch and the caller gets the
// re-fetched page, never a locally patched copy.
package portal

import (
	"context"
	"log/slog"
	"strings"

	"assetdesk/internal/gateway"
	"assetdesk/internal/profile"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/requestcontext"
)

const defaultPageSize = 10

// Backend is the part of the REST backend the pages read and write.
type Backend interface {
	ListAssets(ctx context.Context, query gateway.AssetQuery) (gateway.Page[gateway.Asset], error)
	CreateAsset(ctx context.Context, in gateway.AssetInput) (gateway.Asset, error)
	UpdateAsset(ctx context.Context, id string, in gateway.AssetInput) (gateway.Asset, error)
	DeleteAsset(ctx context.Context, id string) error

	ListEmployeeAssets(ctx context.Context, query gateway.EmployeeAssetQuery) (gateway.Page[gateway.EmployeeAsset], error)
	ReturnEmployeeAsset(ctx context.Context, id string) error
	DeleteEmployeeAsset(ctx context.Context, id string) error

	CreateRequest(ctx context.Context, in gateway.NewAssetRequest) (gateway.AssetRequest, error)
	ListRequests(ctx context.Context, query gateway.RequestQuery) (gateway.Page[gateway.AssetRequest], error)
	UpdateRequestStatus(ctx context.Context, id string, status gateway.RequestStatus) (gateway.AssetRequest, error)

	ListEmployees(ctx context.Context, page, limit int) (gateway.Page[gateway.EmployeeSummary], error)
	RemoveEmployee(ctx context.Context, id string) error
	ListUsers(ctx context.Context, query gateway.UserQuery) (gateway.Page[profile.Record], error)

	ListPackages(ctx context.Context) ([]gateway.Package, error)
	PaymentHistory(ctx context.Context, page, limit int) (gateway.Page[gateway.PaymentRecord], error)
	DeletePayment(ctx context.Context, id string) error
}

type Option func(*options)

type options struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Paging is the page window a list view is showing.
type Paging struct {
	Page  int
	Limit int
}

func (p Paging) normalized() Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageSize
	}
	return p
}

func validateAsset(in *gateway.AssetInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Image = strings.TrimSpace(in.Image)
	if in.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "Asset name is required.")
	}
	if in.Type != gateway.AssetReturnable && in.Type != gateway.AssetNonReturnable {
		return dErrors.New(dErrors.CodeValidation, "Asset type must be Returnable or Non-returnable.")
	}
	if in.Quantity < 0 {
		return dErrors.New(dErrors.CodeValidation, "Quantity cannot be negative.")
	}
	return nil
}

func requireID(id, what string) error {
	if strings.TrimSpace(id) == "" {
		return dErrors.New(dErrors.CodeValidation, what+" id is required.")
	}
	return nil
}

func logMutation(ctx context.Context, logger *slog.Logger, action, id string) {
	logger.InfoContext(ctx, "portal mutation",
		"action", action,
		"id", id,
		"request_id", requestcontext.RequestID(ctx),
	)
}
