package portal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/gateway"
	dErrors "assetdesk/pkg/domain-errors"
)

type noTokens struct{}

func (noTokens) BearerToken(context.Context, string) (string, bool) { return "", false }

// fakeBackend records the calls it receives and answers from a fixed table.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	reply map[string]string
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	f.mu.Lock()
	f.calls = append(f.calls, key)
	body, ok := f.reply[key]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"error":"not found"}`)
		return
	}
	_, _ = io.WriteString(w, body)
}

func (f *fakeBackend) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func newFixture(t *testing.T, reply map[string]string) (*fakeBackend, *gateway.Client) {
	t.Helper()
	fb := &fakeBackend{reply: reply}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fb, gateway.New(srv.URL, noTokens{}, gateway.WithLogger(logger))
}

func discard() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

const assetPage = `{"success":true,"data":{"items":[{"_id":"a1","name":"Laptop","type":"Returnable","quantity":3,"availableQuantity":2}],"total":1,"page":1,"limit":10,"totalPages":1}}`

func TestHR_MutationsReturnTheRefetchedPage(t *testing.T) {
	ctx := context.Background()

	t.Run("create asset", func(t *testing.T) {
		fb, client := newFixture(t, map[string]string{
			"POST /api/v1/assets": `{"success":true,"data":{"_id":"a1","name":"Laptop"}}`,
			"GET /api/v1/assets":  assetPage,
		})
		hr := NewHR(client, discard())

		page, err := hr.CreateAsset(ctx, gateway.AssetInput{Name: " Laptop ", Type: gateway.AssetReturnable, Quantity: 3}, gateway.AssetQuery{})
		require.NoError(t, err)
		assert.Equal(t, []string{"POST /api/v1/assets", "GET /api/v1/assets"}, fb.seen())
		require.Len(t, page.Items, 1)
		assert.Equal(t, 2, page.Items[0].AvailableQuantity)
	})

	t.Run("failed mutation skips the re-fetch", func(t *testing.T) {
		fb, client := newFixture(t, map[string]string{
			"GET /api/v1/assets": assetPage,
		})
		hr := NewHR(client, discard())

		_, err := hr.DeleteAsset(ctx, "missing", gateway.AssetQuery{})
		assert.True(t, gateway.IsNotFound(err))
		assert.Equal(t, []string{"DELETE /api/v1/assets/missing"}, fb.seen())
	})

	t.Run("decide request", func(t *testing.T) {
		fb, client := newFixture(t, map[string]string{
			"PATCH /api/v1/requests/r1/status": `{"success":true,"data":{"_id":"r1","status":"accepted"}}`,
			"GET /api/v1/requests":             `{"success":true,"data":{"items":[{"_id":"r1","status":"accepted"}],"total":1}}`,
		})
		hr := NewHR(client, discard())

		page, err := hr.DecideRequest(ctx, "r1", gateway.RequestAccepted, gateway.RequestQuery{Status: gateway.RequestPending})
		require.NoError(t, err)
		assert.Equal(t, gateway.RequestAccepted, page.Items[0].Status)
		assert.Equal(t, []string{"PATCH /api/v1/requests/r1/status", "GET /api/v1/requests"}, fb.seen())
	})

	t.Run("remove employee and delete payment", func(t *testing.T) {
		fb, client := newFixture(t, map[string]string{
			"DELETE /api/v1/employees/e1":  `{"success":true}`,
			"GET /api/v1/employees":        `{"success":true,"data":{"items":[],"total":0}}`,
			"DELETE /api/v1/payments/p1":   `{"success":true}`,
			"GET /api/v1/payments/history": `{"success":true,"data":{"items":[],"total":0}}`,
		})
		hr := NewHR(client, discard())

		_, err := hr.RemoveEmployee(ctx, "e1", Paging{})
		require.NoError(t, err)
		_, err = hr.DeletePayment(ctx, "p1", Paging{Page: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"DELETE /api/v1/employees/e1", "GET /api/v1/employees",
			"DELETE /api/v1/payments/p1", "GET /api/v1/payments/history",
		}, fb.seen())
	})
}

func TestHR_LocalValidation(t *testing.T) {
	ctx := context.Background()
	fb, client := newFixture(t, nil)
	hr := NewHR(client, discard())

	_, err := hr.CreateAsset(ctx, gateway.AssetInput{Name: "", Type: gateway.AssetReturnable}, gateway.AssetQuery{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = hr.CreateAsset(ctx, gateway.AssetInput{Name: "Desk", Type: "Rental"}, gateway.AssetQuery{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = hr.DecideRequest(ctx, "r1", gateway.RequestAssigned, gateway.RequestQuery{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = hr.RemoveEmployee(ctx, " ", Paging{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	assert.Empty(t, fb.seen())
}

func TestHR_Candidates(t *testing.T) {
	var role, limit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, limit = r.URL.Query().Get("role"), r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"items": []any{}}})
	}))
	t.Cleanup(srv.Close)
	hr := NewHR(gateway.New(srv.URL, noTokens{}), discard())

	_, err := hr.Candidates(context.Background(), gateway.UserQuery{Role: "HR"})
	require.NoError(t, err)
	assert.Equal(t, "Employee", role)
	assert.Equal(t, "10", limit)
}

func TestEmployee_MutationsReturnTheRefetchedPage(t *testing.T) {
	ctx := context.Background()

	t.Run("return asset", func(t *testing.T) {
		fb, client := newFixture(t, map[string]string{
			"PATCH /api/v1/employee-assets/ea1/return": `{"success":true}`,
			"GET /api/v1/employee-assets":              `{"success":true,"data":{"items":[{"_id":"ea1","status":"returned"}],"total":1}}`,
		})
		emp := NewEmployee(client, discard())

		page, err := emp.ReturnAsset(ctx, "ea1", gateway.EmployeeAssetQuery{})
		require.NoError(t, err)
		assert.Equal(t, gateway.RequestReturned, page.Items[0].Status)
		assert.Equal(t, []string{"PATCH /api/v1/employee-assets/ea1/return", "GET /api/v1/employee-assets"}, fb.seen())
	})

	t.Run("request asset", func(t *testing.T) {
		fb, client := newFixture(t, map[string]string{
			"POST /api/v1/requests": `{"success":true,"data":{"_id":"r9","status":"pending"}}`,
			"GET /api/v1/requests":  `{"success":true,"data":{"items":[{"_id":"r9","status":"pending"}],"total":1}}`,
		})
		emp := NewEmployee(client, discard())

		page, err := emp.RequestAsset(ctx, gateway.NewAssetRequest{AssetID: "a1", Note: " need it "}, gateway.RequestQuery{})
		require.NoError(t, err)
		assert.Equal(t, "r9", page.Items[0].ID)
		assert.Equal(t, []string{"POST /api/v1/requests", "GET /api/v1/requests"}, fb.seen())
	})

	t.Run("requestable defaults to in-stock", func(t *testing.T) {
		var stock string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stock = r.URL.Query().Get("stock")
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, assetPage)
		}))
		t.Cleanup(srv.Close)
		emp := NewEmployee(gateway.New(srv.URL, noTokens{}), discard())

		_, err := emp.Requestable(ctx, gateway.AssetQuery{})
		require.NoError(t, err)
		assert.Equal(t, "available", stock)
	})
}
