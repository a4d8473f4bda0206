package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"assetdesk/internal/profile"
)

func pageQuery(q url.Values, page, limit int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// Users

func (c *Client) CreateUser(ctx context.Context, rec profile.Record) (profile.Record, error) {
	var out profile.Record
	err := c.Do(ctx, http.MethodPost, "/users", nil, rec, &out)
	return out, err
}

// UserByEmail returns the backend record for email. A missing user satisfies
// IsNotFound, whether the backend answers 404 or an empty record.
func (c *Client) UserByEmail(ctx context.Context, email string) (profile.Record, error) {
	var out profile.Record
	if err := c.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(email), nil, nil, &out); err != nil {
		return profile.Record{}, err
	}
	if out.Email == "" {
		return profile.Record{}, apiError(http.StatusNotFound, "user not found")
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, email string, update UserUpdate) (profile.Record, error) {
	var out profile.Record
	err := c.Do(ctx, http.MethodPatch, "/users/"+url.PathEscape(email), nil, update, &out)
	return out, err
}

func (c *Client) ListUsers(ctx context.Context, query UserQuery) (Page[profile.Record], error) {
	q := url.Values{}
	setIf(q, "search", query.Search)
	setIf(q, "role", query.Role)
	var out Page[profile.Record]
	err := c.Do(ctx, http.MethodGet, "/users", pageQuery(q, query.Page, query.Limit), nil, &out)
	return out, err
}

// Auth

// Login exchanges the provider identity for a backend bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	var out loginResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Assets

func (c *Client) CreateAsset(ctx context.Context, in AssetInput) (Asset, error) {
	var out Asset
	err := c.Do(ctx, http.MethodPost, "/assets", nil, in, &out)
	return out, err
}

func (c *Client) Asset(ctx context.Context, id string) (Asset, error) {
	var out Asset
	err := c.Do(ctx, http.MethodGet, "/assets/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) UpdateAsset(ctx context.Context, id string, in AssetInput) (Asset, error) {
	var out Asset
	err := c.Do(ctx, http.MethodPatch, "/assets/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/assets/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListAssets(ctx context.Context, query AssetQuery) (Page[Asset], error) {
	q := url.Values{}
	setIf(q, "search", query.Search)
	setIf(q, "type", string(query.Type))
	setIf(q, "stock", query.Stock)
	var out Page[Asset]
	err := c.Do(ctx, http.MethodGet, "/assets", pageQuery(q, query.Page, query.Limit), nil, &out)
	return out, err
}

// Employee assets

func (c *Client) ListEmployeeAssets(ctx context.Context, query EmployeeAssetQuery) (Page[EmployeeAsset], error) {
	q := url.Values{}
	setIf(q, "search", query.Search)
	setIf(q, "type", string(query.Type))
	var out Page[EmployeeAsset]
	err := c.Do(ctx, http.MethodGet, "/employee-assets", pageQuery(q, query.Page, query.Limit), nil, &out)
	return out, err
}

func (c *Client) ReturnEmployeeAsset(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodPatch, "/employee-assets/"+url.PathEscape(id)+"/return", nil, nil, nil)
}

func (c *Client) DeleteEmployeeAsset(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/employee-assets/"+url.PathEscape(id), nil, nil, nil)
}

// Requests

func (c *Client) CreateRequest(ctx context.Context, in NewAssetRequest) (AssetRequest, error) {
	var out AssetRequest
	err := c.Do(ctx, http.MethodPost, "/requests", nil, in, &out)
	return out, err
}

func (c *Client) ListRequests(ctx context.Context, query RequestQuery) (Page[AssetRequest], error) {
	q := url.Values{}
	setIf(q, "search", query.Search)
	setIf(q, "status", string(query.Status))
	var out Page[AssetRequest]
	err := c.Do(ctx, http.MethodGet, "/requests", pageQuery(q, query.Page, query.Limit), nil, &out)
	return out, err
}

func (c *Client) UpdateRequestStatus(ctx context.Context, id string, status RequestStatus) (AssetRequest, error) {
	var out AssetRequest
	body := map[string]RequestStatus{"status": status}
	err := c.Do(ctx, http.MethodPatch, "/requests/"+url.PathEscape(id)+"/status", nil, body, &out)
	return out, err
}

// Employees

func (c *Client) ListEmployees(ctx context.Context, page, limit int) (Page[EmployeeSummary], error) {
	var out Page[EmployeeSummary]
	err := c.Do(ctx, http.MethodGet, "/employees", pageQuery(nil, page, limit), nil, &out)
	return out, err
}

func (c *Client) RemoveEmployee(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, nil, nil)
}

// Packages

func (c *Client) ListPackages(ctx context.Context) ([]Package, error) {
	var out []Package
	err := c.Do(ctx, http.MethodGet, "/packages", nil, nil, &out)
	return out, err
}

// Payments

func (c *Client) CreatePaymentIntent(ctx context.Context, in PaymentIntentRequest) (PaymentIntent, error) {
	var out PaymentIntent
	err := c.Do(ctx, http.MethodPost, "/payments/create-intent", nil, in, &out)
	return out, err
}

func (c *Client) ConfirmPayment(ctx context.Context, in PaymentConfirmation) (PaymentRecord, error) {
	var out PaymentRecord
	err := c.Do(ctx, http.MethodPost, "/payments/confirm", nil, in, &out)
	return out, err
}

func (c *Client) VerifyCheckoutSession(ctx context.Context, sessionID string) (CheckoutSession, error) {
	var out CheckoutSession
	err := c.Do(ctx, http.MethodGet, "/payments/verify-session/"+url.PathEscape(sessionID), nil, nil, &out)
	return out, err
}

func (c *Client) PaymentHistory(ctx context.Context, page, limit int) (Page[PaymentRecord], error) {
	var out Page[PaymentRecord]
	err := c.Do(ctx, http.MethodGet, "/payments/history", pageQuery(nil, page, limit), nil, &out)
	return out, err
}

func (c *Client) DeletePayment(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/payments/"+url.PathEscape(id), nil, nil, nil)
}
