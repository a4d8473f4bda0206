// Package gateway is the single outbound path to the REST backend. Every call
// carries the session's bearer token when one exists, and any 401 ends the
// session.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"assetdesk/internal/gateway/metrics"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/sentinel"
	"assetdesk/pkg/requestcontext"
)

const apiPrefix = "/api/v1"

// ErrSessionExpired is returned for every backend 401.
var ErrSessionExpired = dErrors.Wrap(sentinel.ErrUnauthorized, dErrors.CodeUnauthorized, "session expired, please sign in again")

// TokenSource yields the bearer token held for a session.
type TokenSource interface {
	BearerToken(ctx context.Context, sessionID string) (string, bool)
}

// UnauthorizedHandler is invoked once per backend 401 with the affected
// session.
type UnauthorizedHandler func(ctx context.Context, sessionID string)

// APIError is a non-2xx (or success:false) backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// Unwrap exposes the infrastructure fact behind the status.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return sentinel.ErrNotFound
	case e.Status == http.StatusConflict:
		return sentinel.ErrConflict
	case e.Status == http.StatusUnauthorized:
		return sentinel.ErrUnauthorized
	case e.Status >= 500:
		return sentinel.ErrUnavailable
	}
	return nil
}

func (e *APIError) code() dErrors.Code {
	switch {
	case e.Status == http.StatusBadRequest, e.Status == http.StatusUnprocessableEntity, e.Status < 300:
		return dErrors.CodeValidation
	case e.Status == http.StatusForbidden:
		return dErrors.CodeForbidden
	case e.Status == http.StatusNotFound:
		return dErrors.CodeNotFound
	case e.Status == http.StatusConflict:
		return dErrors.CodeConflict
	case e.Status == http.StatusTooManyRequests:
		return dErrors.CodeTooManyRequests
	case e.Status >= 500:
		return dErrors.CodeUnavailable
	}
	return dErrors.CodeBadRequest
}

// envelope is the backend's response shape. error may be a string or an
// object carrying a message.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func (e envelope) errorMessage() string {
	if len(e.Error) > 0 {
		var s string
		if json.Unmarshal(e.Error, &s) == nil && s != "" {
			return s
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(e.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// Client calls the backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithTimeout bounds every call. The default is 15s.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http.Timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// New builds a client for the backend rooted at baseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		logger:  slog.Default(),
		tracer:  otel.Tracer("assetdesk/gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler installs the forced-logout hook. It is a setter
// because the auth bridge that owns logout is built on top of this client.
func (c *Client) SetUnauthorizedHandler(fn UnauthorizedHandler) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// Do sends one request and decodes the envelope's data into out (which may
// be nil). path is relative to /api/v1.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	route := routeLabel(path)
	ctx, span := c.tracer.Start(ctx, "backend "+method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.template", apiPrefix+route),
		),
	)
	defer span.End()

	start := time.Now()
	status, err := c.do(ctx, method, path, query, body, out)

	outcome := "network"
	if status > 0 {
		outcome = strconv.Itoa(status)
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	c.metrics.ObserveRequest(method, route, outcome, start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return 0, err
	}

	sessionID := requestcontext.SessionID(ctx)
	if token, ok := c.tokens.BearerToken(ctx, sessionID); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "backend unreachable",
			"method", method,
			"path", path,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return 0, dErrors.Wrap(fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err), dErrors.CodeUnavailable, "backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.unauthorized(ctx, sessionID)
		return resp.StatusCode, ErrSessionExpired
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return resp.StatusCode, dErrors.Wrap(fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err), dErrors.CodeUnavailable, "backend response truncated")
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 300 {
				return resp.StatusCode, apiError(resp.StatusCode, http.StatusText(resp.StatusCode))
			}
			return resp.StatusCode, dErrors.Wrap(err, dErrors.CodeInternal, "malformed backend response")
		}
	}
	if resp.StatusCode >= 300 || (len(raw) > 0 && !env.Success) {
		return resp.StatusCode, apiError(resp.StatusCode, env.errorMessage())
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return resp.StatusCode, dErrors.Wrap(err, dErrors.CodeInternal, "malformed backend response")
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	target := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode backend request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build backend request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := requestcontext.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

func (c *Client) unauthorized(ctx context.Context, sessionID string) {
	c.metrics.IncrementForcedLogout()
	c.logger.InfoContext(ctx, "backend rejected credential, ending session",
		"request_id", requestcontext.RequestID(ctx),
	)

	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil && sessionID != "" {
		fn(context.WithoutCancel(ctx), sessionID)
	}
}

func apiError(status int, message string) error {
	apiErr := &APIError{Status: status, Message: message}
	return dErrors.Wrap(apiErr, apiErr.code(), message)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}

// IsSessionExpired reports whether err is a backend 401, after which the
// session's credential state is gone.
func IsSessionExpired(err error) bool {
	return errors.Is(err, sentinel.ErrUnauthorized)
}

// IsUnavailable reports whether the backend could not be reached or failed
// on its side.
func IsUnavailable(err error) bool {
	return errors.Is(err, sentinel.ErrUnavailable)
}

// routeLabel collapses identifiers in path so metric and span names stay
// bounded.
func routeLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if i > 0 && looksLikeID(seg) {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}

func looksLikeID(seg string) bool {
	if len(seg) >= 16 || strings.Contains(seg, "@") {
		return true
	}
	return strings.ContainsAny(seg, "0123456789")
}
