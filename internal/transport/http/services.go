package httptransport

import (
	"context"

	"assetdesk/internal/auth"
	"assetdesk/internal/checkout"
	"assetdesk/internal/gateway"
	"assetdesk/internal/portal"
	"assetdesk/internal/profile"
	"assetdesk/pkg/platform/audit"
)

// AuthService is the Auth Bridge as seen by the transport.
type AuthService interface {
	Login(ctx context.Context, sessionID string, creds auth.Credentials) (auth.Result, error)
	Register(ctx context.Context, sessionID string, role profile.Role, reg auth.Registration) (auth.Result, error)
	Logout(ctx context.Context, sessionID string) error
	Current(ctx context.Context, sessionID string) (profile.Profile, error)
	UpdateProfile(ctx context.Context, sessionID string, changes auth.ProfileChanges) (profile.Profile, error)
	Activity(ctx context.Context, sessionID string, limit int) ([]audit.Event, error)
}

// HRService backs the HR pages. Every mutation returns the re-fetched list.
type HRService interface {
	Assets(ctx context.Context, query gateway.AssetQuery) (gateway.Page[gateway.Asset], error)
	CreateAsset(ctx context.Context, in gateway.AssetInput, view gateway.AssetQuery) (gateway.Page[gateway.Asset], error)
	UpdateAsset(ctx context.Context, id string, in gateway.AssetInput, view gateway.AssetQuery) (gateway.Page[gateway.Asset], error)
	DeleteAsset(ctx context.Context, id string, view gateway.AssetQuery) (gateway.Page[gateway.Asset], error)
	Requests(ctx context.Context, query gateway.RequestQuery) (gateway.Page[gateway.AssetRequest], error)
	DecideRequest(ctx context.Context, id string, status gateway.RequestStatus, view gateway.RequestQuery) (gateway.Page[gateway.AssetRequest], error)
	Employees(ctx context.Context, paging portal.Paging) (gateway.Page[gateway.EmployeeSummary], error)
	RemoveEmployee(ctx context.Context, id string, view portal.Paging) (gateway.Page[gateway.EmployeeSummary], error)
	Candidates(ctx context.Context, query gateway.UserQuery) (gateway.Page[profile.Record], error)
	AssignedAssets(ctx context.Context, query gateway.EmployeeAssetQuery) (gateway.Page[gateway.EmployeeAsset], error)
	RevokeAssignment(ctx context.Context, id string, view gateway.EmployeeAssetQuery) (gateway.Page[gateway.EmployeeAsset], error)
	Packages(ctx context.Context) ([]gateway.Package, error)
	Payments(ctx context.Context, paging portal.Paging) (gateway.Page[gateway.PaymentRecord], error)
	DeletePayment(ctx context.Context, id string, view portal.Paging) (gateway.Page[gateway.PaymentRecord], error)
}

// EmployeeService backs the employee pages.
type EmployeeService interface {
	Assets(ctx context.Context, query gateway.EmployeeAssetQuery) (gateway.Page[gateway.EmployeeAsset], error)
	ReturnAsset(ctx context.Context, id string, view gateway.EmployeeAssetQuery) (gateway.Page[gateway.EmployeeAsset], error)
	Requestable(ctx context.Context, query gateway.AssetQuery) (gateway.Page[gateway.Asset], error)
	Requests(ctx context.Context, query gateway.RequestQuery) (gateway.Page[gateway.AssetRequest], error)
	RequestAsset(ctx context.Context, in gateway.NewAssetRequest, view gateway.RequestQuery) (gateway.Page[gateway.AssetRequest], error)
}

// CheckoutService is the Checkout Coordinator.
type CheckoutService interface {
	Start(ctx context.Context, sessionID, packageID string) (checkout.State, error)
	Continue(ctx context.Context, sessionID string) (checkout.State, error)
	Pay(ctx context.Context, sessionID string, card checkout.Card) (checkout.State, error)
	Verify(ctx context.Context, sessionID, checkoutSessionID string) (checkout.State, error)
	Reset(ctx context.Context, sessionID string) error
	State(ctx context.Context, sessionID string) (checkout.State, error)
}
