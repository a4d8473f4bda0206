// Package kratos implements identity.Provider over Ory Kratos native
// (API-client) self-service flows. The BFF holds the Kratos session token
// server-side, so browser flows and CSRF cookies are not involved.
package kratos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	kratos "github.com/ory/kratos-client-go"

	"assetdesk/internal/identity"
	"assetdesk/pkg/platform/sentinel"
	"assetdesk/pkg/requestcontext"
)

// Trait keys in the Kratos identity schema.
const (
	traitEmail   = "email"
	traitName    = "name"
	traitPicture = "picture"
)

// Provider is the Kratos adapter.
type Provider struct {
	identity.Listeners

	client *kratos.APIClient
	logger *slog.Logger
}

type Option func(*Provider)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithHTTPClient replaces the transport used to reach Kratos.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		p.client.GetConfig().HTTPClient = c
	}
}

// New builds a provider against the Kratos public API.
func New(publicURL string, timeout time.Duration, opts ...Option) *Provider {
	cfg := kratos.NewConfiguration()
	cfg.Servers = kratos.ServerConfigurations{{URL: publicURL}}
	cfg.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	p := &Provider{
		client: kratos.NewAPIClient(cfg),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignIn runs a native login flow with the password method.
func (p *Provider) SignIn(ctx context.Context, email, password string) (identity.Principal, error) {
	flow, resp, err := p.client.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return identity.Principal{}, p.classify(ctx, "login_flow_create", err, resp)
	}

	body := kratos.UpdateLoginFlowWithPasswordMethod{
		Method:     "password",
		Identifier: email,
		Password:   password,
	}
	result, resp, err := p.client.FrontendAPI.UpdateLoginFlow(ctx).
		Flow(flow.Id).
		UpdateLoginFlowBody(kratos.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&body)).
		Execute()
	if err != nil {
		return identity.Principal{}, p.classify(ctx, "login_flow_submit", err, resp)
	}

	principal := principalFrom(&result.Session, result.GetSessionToken())
	p.Notify(ctx, identity.SessionChange{SessionID: requestcontext.SessionID(ctx), Principal: &principal})
	return principal, nil
}

// CreateAccount runs a native registration flow. When the Kratos deployment
// does not issue a session on registration, the new account is signed in.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (identity.Principal, error) {
	flow, resp, err := p.client.FrontendAPI.CreateNativeRegistrationFlow(ctx).Execute()
	if err != nil {
		return identity.Principal{}, p.classify(ctx, "registration_flow_create", err, resp)
	}

	body := kratos.UpdateRegistrationFlowWithPasswordMethod{
		Method:   "password",
		Password: password,
		Traits:   map[string]interface{}{traitEmail: email},
	}
	result, resp, err := p.client.FrontendAPI.UpdateRegistrationFlow(ctx).
		Flow(flow.Id).
		UpdateRegistrationFlowBody(kratos.UpdateRegistrationFlowWithPasswordMethodAsUpdateRegistrationFlowBody(&body)).
		Execute()
	if err != nil {
		return identity.Principal{}, p.classify(ctx, "registration_flow_submit", err, resp)
	}

	if result.Session == nil || result.GetSessionToken() == "" {
		return p.SignIn(ctx, email, password)
	}

	principal := principalFrom(result.Session, result.GetSessionToken())
	p.Notify(ctx, identity.SessionChange{SessionID: requestcontext.SessionID(ctx), Principal: &principal})
	return principal, nil
}

// UpdateProfile sets the display name and photo traits through a native
// settings flow. Empty values leave the trait unchanged.
func (p *Provider) UpdateProfile(ctx context.Context, sessionToken, name, photoURL string) (identity.Principal, error) {
	flow, resp, err := p.client.FrontendAPI.CreateNativeSettingsFlow(ctx).XSessionToken(sessionToken).Execute()
	if err != nil {
		return identity.Principal{}, p.classify(ctx, "settings_flow_create", err, resp)
	}

	traits := copyTraits(flow.Identity.Traits)
	if name != "" {
		traits[traitName] = name
	}
	if photoURL != "" {
		traits[traitPicture] = photoURL
	}

	body := kratos.UpdateSettingsFlowWithProfileMethod{
		Method: "profile",
		Traits: traits,
	}
	updated, resp, err := p.client.FrontendAPI.UpdateSettingsFlow(ctx).
		Flow(flow.Id).
		XSessionToken(sessionToken).
		UpdateSettingsFlowBody(kratos.UpdateSettingsFlowWithProfileMethodAsUpdateSettingsFlowBody(&body)).
		Execute()
	if err != nil {
		return identity.Principal{}, p.classify(ctx, "settings_flow_submit", err, resp)
	}

	principal := principalFromIdentity(&updated.Identity)
	principal.SessionToken = sessionToken
	p.Notify(ctx, identity.SessionChange{SessionID: requestcontext.SessionID(ctx), Principal: &principal})
	return principal, nil
}

// SignOut revokes the session token. A token Kratos no longer knows is
// treated as already signed out.
func (p *Provider) SignOut(ctx context.Context, sessionToken string) error {
	defer p.Notify(ctx, identity.SessionChange{SessionID: requestcontext.SessionID(ctx)})

	if sessionToken == "" {
		return nil
	}
	resp, err := p.client.FrontendAPI.PerformNativeLogout(ctx).
		PerformNativeLogoutBody(*kratos.NewPerformNativeLogoutBody(sessionToken)).
		Execute()
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized) {
			return nil
		}
		return p.classify(ctx, "logout", err, resp)
	}
	return nil
}

// Refresh asks Kratos whether the session is still active.
func (p *Provider) Refresh(ctx context.Context, sessionToken string) (identity.Principal, error) {
	sessionID := requestcontext.SessionID(ctx)
	if sessionToken == "" {
		p.Notify(ctx, identity.SessionChange{SessionID: sessionID})
		return identity.Principal{}, identity.ErrNoSession
	}

	session, resp, err := p.client.FrontendAPI.ToSession(ctx).XSessionToken(sessionToken).Execute()
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			p.Notify(ctx, identity.SessionChange{SessionID: sessionID})
			return identity.Principal{}, identity.ErrNoSession
		}
		return identity.Principal{}, p.classify(ctx, "whoami", err, resp)
	}
	if !session.GetActive() {
		p.Notify(ctx, identity.SessionChange{SessionID: sessionID})
		return identity.Principal{}, identity.ErrNoSession
	}

	principal := principalFrom(session, sessionToken)
	p.Notify(ctx, identity.SessionChange{SessionID: sessionID, Principal: &principal})
	return principal, nil
}

func (p *Provider) classify(ctx context.Context, op string, err error, resp *http.Response) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	var apiErr *kratos.GenericOpenAPIError
	if !errors.As(err, &apiErr) || resp == nil {
		p.logger.WarnContext(ctx, "identity provider unreachable", "op", op, "error", err)
		return &identity.Error{Code: identity.CodeGeneric, Err: fmt.Errorf("%s: %w", op, sentinel.ErrUnavailable)}
	}

	code := codeFromBody(apiErr.Body())
	if code == identity.CodeGeneric {
		p.logger.WarnContext(ctx, "identity provider rejected request",
			"op", op,
			"status", status,
			"error", err,
		)
	}
	return &identity.Error{Code: code, Err: fmt.Errorf("%s: status %d", op, status)}
}

func principalFrom(session *kratos.Session, token string) identity.Principal {
	var principal identity.Principal
	if session.Identity != nil {
		principal = principalFromIdentity(session.Identity)
	}
	principal.SessionID = session.Id
	principal.SessionToken = token
	return principal
}

func principalFromIdentity(id *kratos.Identity) identity.Principal {
	traits, _ := id.Traits.(map[string]interface{})
	return identity.Principal{
		UserID:   id.Id,
		Email:    stringTrait(traits, traitEmail),
		Name:     stringTrait(traits, traitName),
		PhotoURL: stringTrait(traits, traitPicture),
	}
}

func stringTrait(traits map[string]interface{}, key string) string {
	v, _ := traits[key].(string)
	return v
}

func copyTraits(raw interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	if traits, ok := raw.(map[string]interface{}); ok {
		for k, v := range traits {
			out[k] = v
		}
	}
	return out
}
