package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdesk/internal/gateway/metrics"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/sentinel"
	"assetdesk/pkg/requestcontext"
)

type staticTokens map[string]string

func (s staticTokens) BearerToken(_ context.Context, sessionID string) (string, bool) {
	tok, ok := s[sessionID]
	return tok, ok
}

func newTestClient(t *testing.T, tokens TokenSource, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(srv.URL, tokens, opts...)
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestDo_Authorization(t *testing.T) {
	var gotHeader atomic.Value
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotHeader.Store(r.Header.Get("Authorization"))
		respond(w, http.StatusOK, `{"success":true,"data":[]}`)
	}

	t.Run("bearer attached when the session holds a token", func(t *testing.T) {
		c := newTestClient(t, staticTokens{"s1": "tok"}, handler)
		ctx := requestcontext.WithSessionID(context.Background(), "s1")

		_, err := c.ListPackages(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok", gotHeader.Load())
	})

	t.Run("no header without a token", func(t *testing.T) {
		c := newTestClient(t, staticTokens{}, handler)
		ctx := requestcontext.WithSessionID(context.Background(), "s1")

		_, err := c.ListPackages(ctx)
		require.NoError(t, err)
		assert.Equal(t, "", gotHeader.Load())
	})
}

func TestDo_UnauthorizedForcesLogout(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	c := newTestClient(t, staticTokens{"s1": "tok"}, func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusUnauthorized, `{"success":false,"error":"expired"}`)
	}, WithMetrics(m))

	var loggedOut []string
	c.SetUnauthorizedHandler(func(_ context.Context, sessionID string) {
		loggedOut = append(loggedOut, sessionID)
	})

	ctx := requestcontext.WithSessionID(context.Background(), "s1")
	for _, call := range []func() error{
		func() error { _, err := c.ListAssets(ctx, AssetQuery{}); return err },
		func() error { return c.DeletePayment(ctx, "p1") },
	} {
		err := call()
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.True(t, IsSessionExpired(err))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	}
	assert.Equal(t, []string{"s1", "s1"}, loggedOut)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ForcedLogouts))
}

func TestDo_Envelope(t *testing.T) {
	t.Run("data is decoded", func(t *testing.T) {
		c := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/assets", r.URL.Path)
			assert.Equal(t, "lap", r.URL.Query().Get("search"))
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "available", r.URL.Query().Get("stock"))
			respond(w, http.StatusOK, `{"success":true,"data":{"items":[{"_id":"a1","name":"Laptop","type":"Returnable","quantity":3,"availableQuantity":1}],"total":1,"page":2,"limit":10,"totalPages":1}}`)
		})

		page, err := c.ListAssets(context.Background(), AssetQuery{Search: "lap", Stock: "available", Page: 2, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Laptop", page.Items[0].Name)
		assert.Equal(t, AssetReturnable, page.Items[0].Type)
	})

	t.Run("success false surfaces the message", func(t *testing.T) {
		c := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusBadRequest, `{"success":false,"error":"quantity must be positive"}`)
		})

		_, err := c.CreateAsset(context.Background(), AssetInput{Name: "x"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		de, ok := dErrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "quantity must be positive", de.Message)
	})

	t.Run("error object form", func(t *testing.T) {
		c := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusConflict, `{"success":false,"error":{"message":"already affiliated"}}`)
		})

		_, err := c.CreateRequest(context.Background(), NewAssetRequest{AssetID: "a1"})
		assert.ErrorIs(t, err, sentinel.ErrConflict)
		de, _ := dErrors.As(err)
		assert.Equal(t, "already affiliated", de.Message)
	})

	t.Run("not found is recognisable", func(t *testing.T) {
		c := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/users/a@x.com", r.URL.Path)
			respond(w, http.StatusNotFound, `{"success":false,"error":"user not found"}`)
		})

		_, err := c.UserByEmail(context.Background(), "a@x.com")
		assert.True(t, IsNotFound(err))
	})

	t.Run("empty user record counts as not found", func(t *testing.T) {
		for _, body := range []string{`{"success":true,"data":null}`, `{"success":true,"data":{}}`} {
			c := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
				respond(w, http.StatusOK, body)
			})

			rec, err := c.UserByEmail(context.Background(), "a@x.com")
			assert.True(t, IsNotFound(err), body)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound), body)
			assert.Empty(t, rec.Email)
		}
	})

	t.Run("server errors are unavailable", func(t *testing.T) {
		c := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusBadGateway, `<html>bad gateway</html>`)
		})

		_, err := c.ListPackages(context.Background())
		assert.True(t, IsUnavailable(err))
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}

func TestDo_BodyAndHeaders(t *testing.T) {
	c := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		var body PaymentIntentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(1500), body.Amount)
		respond(w, http.StatusOK, `{"success":true,"data":{"paymentIntentId":"pi_1","clientSecret":"pi_1_secret","amount":1500}}`)
	})

	ctx := requestcontext.WithRequestID(context.Background(), "req-1")
	intent, err := c.CreatePaymentIntent(ctx, PaymentIntentRequest{Amount: 1500, PackageID: "basic", Email: "hr@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
}

func TestDo_Timeout(t *testing.T) {
	c := newTestClient(t, staticTokens{}, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		respond(w, http.StatusOK, `{"success":true}`)
	}, WithTimeout(20*time.Millisecond))

	err := c.DeleteAsset(context.Background(), "a1")
	assert.True(t, IsUnavailable(err))
}

func TestRouteLabel(t *testing.T) {
	cases := map[string]string{
		"/assets":        "/assets",
		"/users/a@x.com": "/users/{id}",
		"/requests/65f1c2a9e4b0a1b2c3d4e5f6/status": "/requests/{id}/status",
		"/payments/create-intent":                   "/payments/create-intent",
		"/employee-assets/42/return":                "/employee-assets/{id}/return",
	}
	for in, want := range cases {
		assert.Equal(t, want, routeLabel(in), in)
	}
}
