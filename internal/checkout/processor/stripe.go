// Package processor confirms card payments with Stripe.
package processor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"assetdesk/internal/checkout"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/sentinel"
	"assetdesk/pkg/requestcontext"
)

// ErrPaymentPending means Stripe accepted the card but has not settled the
// charge. The purchase is not confirmed to the backend; the hosted checkout
// verify path picks it up once Stripe reports it paid.
var ErrPaymentPending = dErrors.New(dErrors.CodeConflict, "Your payment is still processing. Check your payment history before trying again.")

// Stripe implements checkout.Processor by creating a card payment method and
// confirming the backend-created payment intent with it.
type Stripe struct {
	api    *client.API
	logger *slog.Logger
}

type Option func(*stripeConfig)

type stripeConfig struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// WithURL points the client at another API host.
func WithURL(url string) Option {
	return func(c *stripeConfig) {
		c.url = url
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *stripeConfig) {
		c.httpClient = hc
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *stripeConfig) {
		c.logger = logger
	}
}

// NewStripe builds a processor for secretKey.
func NewStripe(secretKey string, opts ...Option) *Stripe {
	cfg := stripeConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	backendConfig := &stripe.BackendConfig{
		HTTPClient:        cfg.httpClient,
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if cfg.url != "" {
		backendConfig.URL = stripe.String(cfg.url)
	}
	api := stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig)

	sc := &client.API{}
	sc.Init(secretKey, &stripe.Backends{API: api, Connect: api, Uploads: api})
	return &Stripe{api: sc, logger: cfg.logger}
}

// ConfirmCardPayment charges card against the intent behind clientSecret.
func (s *Stripe) ConfirmCardPayment(ctx context.Context, clientSecret string, card checkout.CardDetails) (checkout.Confirmation, error) {
	intentID, _, ok := strings.Cut(clientSecret, "_secret_")
	if !ok || intentID == "" {
		return checkout.Confirmation{}, dErrors.New(dErrors.CodeInternal, "malformed payment client secret")
	}

	month, _ := strconv.ParseInt(card.ExpMonth, 10, 64)
	year, _ := strconv.ParseInt(card.ExpYear, 10, 64)
	if year < 100 {
		year += 2000
	}

	pmParams := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(month),
			ExpYear:  stripe.Int64(year),
			CVC:      stripe.String(card.CVC),
		},
	}
	if card.Holder != "" {
		pmParams.BillingDetails = &stripe.PaymentMethodBillingDetailsParams{Name: stripe.String(card.Holder)}
	}
	pmParams.Context = ctx
	pm, err := s.api.PaymentMethods.New(pmParams)
	if err != nil {
		return checkout.Confirmation{}, s.classify(ctx, "payment_method", err)
	}

	confirmParams := &stripe.PaymentIntentConfirmParams{PaymentMethod: stripe.String(pm.ID)}
	confirmParams.Context = ctx
	intent, err := s.api.PaymentIntents.Confirm(intentID, confirmParams)
	if err != nil {
		return checkout.Confirmation{}, s.classify(ctx, "confirm", err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
	case stripe.PaymentIntentStatusProcessing:
		s.logger.InfoContext(ctx, "stripe payment still processing",
			"payment_intent", intent.ID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return checkout.Confirmation{}, ErrPaymentPending
	case stripe.PaymentIntentStatusRequiresAction:
		return checkout.Confirmation{}, dErrors.New(dErrors.CodeBadRequest, "Your bank requires additional authentication. Please use another card.")
	default:
		return checkout.Confirmation{}, dErrors.New(dErrors.CodeBadRequest, "Your card was not charged. Please try again.")
	}

	txID := intent.ID
	if intent.LatestCharge != nil && intent.LatestCharge.ID != "" {
		txID = intent.LatestCharge.ID
	}
	return checkout.Confirmation{TransactionID: txID}, nil
}

// classify keeps Stripe's card messages, which are written for the
// cardholder, and hides everything else.
func (s *Stripe) classify(ctx context.Context, op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		s.logger.WarnContext(ctx, "stripe request failed",
			"op", op,
			"type", stripeErr.Type,
			"code", stripeErr.Code,
			"status", stripeErr.HTTPStatusCode,
			"request_id", requestcontext.RequestID(ctx),
		)
		switch {
		case stripeErr.Type == stripe.ErrorTypeCard:
			return dErrors.Wrap(err, dErrors.CodeBadRequest, stripeErr.Msg)
		case stripeErr.HTTPStatusCode == http.StatusTooManyRequests || stripeErr.HTTPStatusCode >= 500:
			return dErrors.Wrap(errors.Join(sentinel.ErrUnavailable, err), dErrors.CodeUnavailable, "Payment service is unavailable. Please try again.")
		default:
			return dErrors.Wrap(err, dErrors.CodeBadRequest, "Payment could not be processed.")
		}
	}

	s.logger.WarnContext(ctx, "stripe unreachable",
		"op", op,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(errors.Join(sentinel.ErrUnavailable, err), dErrors.CodeUnavailable, "Payment service is unavailable. Please try again.")
}
