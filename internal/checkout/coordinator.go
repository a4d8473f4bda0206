// Package checkout drives the package purchase flow for HR managers:
// confirm the plan, collect card details, confirm with the payment processor,
// confirm with the backend, refresh the cached profile.
//
// Flow state lives in process memory only. Card data is never written to the
// session stores.
package checkout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"assetdesk/internal/checkout/metrics"
	"assetdesk/internal/gateway"
	"assetdesk/internal/profile"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/audit"
	"assetdesk/pkg/requestcontext"
)

// Step is a checkout state.
type Step string

const (
	StepConfirm    Step = "confirm"
	StepPayment    Step = "payment"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
	StepError      Step = "error"
)

const genericFailure = "Payment failed. Please try again."

var (
	ErrNoCheckout  = dErrors.New(dErrors.CodeNotFound, "No checkout in progress.")
	ErrInFlight    = dErrors.New(dErrors.CodeConflict, "A payment is already being processed.")
	ErrUnknownPlan = dErrors.New(dErrors.CodeNotFound, "That package is not available.")
)

// State is what the checkout view renders. The entered card appears only in
// masked form.
type State struct {
	Step          Step            `json:"step"`
	Plan          gateway.Package `json:"plan"`
	Card          CardSummary     `json:"card,omitzero"`
	Message       string          `json:"message,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
}

// Confirmation is the processor's answer to a successful charge.
type Confirmation struct {
	TransactionID string
}

// Processor confirms a card payment against a server-issued client secret.
type Processor interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, card CardDetails) (Confirmation, error)
}

type Backend interface {
	ListPackages(ctx context.Context) ([]gateway.Package, error)
	CreatePaymentIntent(ctx context.Context, in gateway.PaymentIntentRequest) (gateway.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, in gateway.PaymentConfirmation) (gateway.PaymentRecord, error)
	VerifyCheckoutSession(ctx context.Context, sessionID string) (gateway.CheckoutSession, error)
}

// Profiles reads and refreshes the purchaser's cached profile.
type Profiles interface {
	Current(ctx context.Context, sessionID string) (profile.Profile, error)
	RefreshProfile(ctx context.Context, sessionID string) (profile.Profile, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type flow struct {
	state    State
	card     Card
	inFlight bool
	touched  time.Time
}

// Coordinator holds one checkout flow per session.
type Coordinator struct {
	backend   Backend
	processor Processor
	profiles  Profiles

	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
	idle           time.Duration

	mu    sync.Mutex
	flows map[string]*flow
}

type Option func(*Coordinator)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(c *Coordinator) {
		c.auditPublisher = publisher
	}
}

// WithIdleTimeout sets how long an untouched flow is kept.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.idle = d
		}
	}
}

func New(backend Backend, processor Processor, profiles Profiles, opts ...Option) *Coordinator {
	c := &Coordinator{
		backend:   backend,
		processor: processor,
		profiles:  profiles,
		logger:    slog.Default(),
		tracer:    otel.Tracer("assetdesk/checkout"),
		idle:      30 * time.Minute,
		flows:     make(map[string]*flow),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start opens a checkout for packageID in the confirm step, replacing any
// finished or abandoned flow.
func (c *Coordinator) Start(ctx context.Context, sessionID, packageID string) (State, error) {
	plans, err := c.backend.ListPackages(ctx)
	if err != nil {
		return State{}, err
	}
	plan, ok := findPlan(plans, packageID)
	if !ok {
		return State{}, ErrUnknownPlan
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := requestcontext.Now(ctx)
	c.sweep(now)

	if f, ok := c.flows[sessionID]; ok && f.inFlight {
		return f.state, ErrInFlight
	}
	f := &flow{state: State{Step: StepConfirm, Plan: plan}, touched: now}
	c.flows[sessionID] = f
	return f.state, nil
}

// Continue moves from confirm to payment.
func (c *Coordinator) Continue(ctx context.Context, sessionID string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.flows[sessionID]
	if !ok {
		return State{}, ErrNoCheckout
	}
	if f.state.Step != StepConfirm {
		return f.state, dErrors.New(dErrors.CodeBadRequest, "Checkout is not awaiting confirmation.")
	}
	f.state.Step = StepPayment
	f.touched = requestcontext.Now(ctx)
	return f.state, nil
}

// Pay charges the card for the selected plan.
//
// The sequence is backend intent, processor confirmation, backend
// confirmation, profile refresh. A failure at any step leaves the flow in the
// error step with the card kept for a retry; paying again from the error step
// with an empty card reuses it. A processor failure never reaches the backend
// confirmation.
func (c *Coordinator) Pay(ctx context.Context, sessionID string, card Card) (State, error) {
	card = NewCard(card.Holder, card.Number, card.Expiry, card.CVC)

	try, err := c.begin(ctx, sessionID, card)
	if err != nil {
		return c.snapshot(sessionID), err
	}

	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "checkout.pay", trace.WithAttributes(
		attribute.String("checkout.package_id", try.ID),
		attribute.Int64("checkout.amount", try.Price),
	))
	defer span.End()

	fail := func(step string, err error) (State, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, step)
		c.metrics.ObservePayment(step, start)
		return c.fail(ctx, sessionID, step, err), err
	}

	purchaser, err := c.profiles.Current(ctx, sessionID)
	if err != nil {
		return fail("profile", err)
	}
	email := purchaser.Details().Email

	intent, err := c.backend.CreatePaymentIntent(ctx, gateway.PaymentIntentRequest{
		Amount:    try.Price,
		PackageID: try.ID,
		Email:     email,
	})
	if err != nil {
		return fail("intent", err)
	}
	span.AddEvent("intent_created")

	confirmation, err := c.processor.ConfirmCardPayment(ctx, intent.ClientSecret, try.card.Details())
	if err != nil {
		return fail("processor", err)
	}
	span.AddEvent("processor_confirmed")

	_, err = c.backend.ConfirmPayment(ctx, gateway.PaymentConfirmation{
		PaymentIntentID: intent.ID,
		TransactionID:   confirmation.TransactionID,
		PackageID:       try.ID,
		Email:           email,
		Amount:          try.Price,
	})
	if err != nil {
		return fail("backend_confirm", err)
	}
	span.AddEvent("backend_confirmed")

	c.refresh(ctx, sessionID)
	c.metrics.ObservePayment("success", start)
	c.emitAudit(ctx, audit.EventPaymentConfirmed, email, sessionID, "", try.Price)

	return c.update(sessionID, func(f *flow) {
		f.card = Card{}
		f.state.Step = StepSuccess
		f.state.Card = CardSummary{}
		f.state.Message = ""
		f.state.TransactionID = confirmation.TransactionID
	}), nil
}

// Verify completes a checkout that the processor hosted, identified by the
// processor's checkout session id.
func (c *Coordinator) Verify(ctx context.Context, sessionID, checkoutSessionID string) (State, error) {
	if checkoutSessionID == "" {
		return State{}, dErrors.New(dErrors.CodeValidation, "Missing checkout session.")
	}
	cs, err := c.backend.VerifyCheckoutSession(ctx, checkoutSessionID)
	if err != nil {
		return State{}, err
	}

	state := State{Step: StepSuccess, Plan: gateway.Package{ID: cs.PackageID}}
	if cs.Payment != nil {
		state.TransactionID = cs.Payment.TransactionID
	}
	if cs.Status != "complete" && cs.Status != "paid" {
		state.Step = StepError
		state.Message = "Payment was not completed."
		c.store(ctx, sessionID, state)
		return state, dErrors.New(dErrors.CodeBadRequest, state.Message)
	}

	c.refresh(ctx, sessionID)
	c.store(ctx, sessionID, state)
	return state, nil
}

// Reset drops the session's flow. A payment in flight cannot be reset.
func (c *Coordinator) Reset(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.flows[sessionID]; ok && f.inFlight {
		return ErrInFlight
	}
	delete(c.flows, sessionID)
	return nil
}

// State returns the session's current flow.
func (c *Coordinator) State(_ context.Context, sessionID string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.flows[sessionID]
	if !ok {
		return State{}, ErrNoCheckout
	}
	return f.state, nil
}

// attempt is one claimed payment: the plan being bought and the card
// charged for it.
type attempt struct {
	gateway.Package
	card Card
}

// begin validates the card and claims the flow for one payment attempt.
func (c *Coordinator) begin(ctx context.Context, sessionID string, card Card) (attempt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.flows[sessionID]
	if !ok {
		return attempt{}, ErrNoCheckout
	}
	if f.inFlight {
		return attempt{}, ErrInFlight
	}
	if f.state.Step != StepPayment && f.state.Step != StepError {
		return attempt{}, dErrors.New(dErrors.CodeBadRequest, "Checkout is not collecting payment details.")
	}

	if card == (Card{}) && f.state.Step == StepError {
		card = f.card
	}
	f.card = card
	f.state.Card = card.Summary()
	f.touched = requestcontext.Now(ctx)
	if err := card.Validate(); err != nil {
		return attempt{}, err
	}

	f.inFlight = true
	f.state.Step = StepProcessing
	f.state.Message = ""
	return attempt{Package: f.state.Plan, card: card}, nil
}

func (c *Coordinator) fail(ctx context.Context, sessionID, step string, err error) State {
	message := genericFailure
	if de, ok := dErrors.As(err); ok && de.Code != dErrors.CodeInternal && de.Message != "" {
		message = de.Message
	}
	c.logger.WarnContext(ctx, "payment failed",
		"step", step,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)

	state := c.update(sessionID, func(f *flow) {
		f.state.Step = StepError
		f.state.Message = message
	})
	c.emitAudit(ctx, audit.EventPaymentFailed, "", sessionID, step, state.Plan.Price)
	return state
}

// refresh re-reads the profile so the new seat limit shows. The payment is
// already settled, so a failure here is only logged.
func (c *Coordinator) refresh(ctx context.Context, sessionID string) {
	if _, err := c.profiles.RefreshProfile(ctx, sessionID); err != nil {
		c.logger.WarnContext(ctx, "profile refresh after payment failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

// update applies fn to the flow and releases the in-flight claim.
func (c *Coordinator) update(sessionID string, fn func(*flow)) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.flows[sessionID]
	if !ok {
		return State{}
	}
	fn(f)
	f.inFlight = false
	return f.state
}

func (c *Coordinator) store(ctx context.Context, sessionID string, state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.flows[sessionID]; ok && f.inFlight {
		return
	}
	c.flows[sessionID] = &flow{state: state, touched: requestcontext.Now(ctx)}
}

func (c *Coordinator) snapshot(sessionID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.flows[sessionID]; ok {
		return f.state
	}
	return State{}
}

// sweep drops idle flows. Caller holds mu.
func (c *Coordinator) sweep(now time.Time) {
	for id, f := range c.flows {
		if !f.inFlight && now.Sub(f.touched) > c.idle {
			delete(c.flows, id)
		}
	}
}

func (c *Coordinator) emitAudit(ctx context.Context, event audit.AuditEvent, subject, sessionID, reason string, amount int64) {
	if c.auditPublisher == nil {
		return
	}
	if subject == "" {
		if p, err := c.profiles.Current(ctx, sessionID); err == nil {
			subject = p.Details().Email
		}
	}
	err := c.auditPublisher.Emit(ctx, audit.Event{
		Action:    string(event),
		Subject:   subject,
		SessionID: sessionID,
		Role:      string(profile.RoleHR),
		Reason:    reason,
		Amount:    amount,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "audit emit failed", "action", event, "error", err)
	}
}

func findPlan(plans []gateway.Package, id string) (gateway.Package, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return gateway.Package{}, false
}
