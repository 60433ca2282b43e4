package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/shared"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// StripeGateway creates and looks up Stripe Checkout sessions.
type StripeGateway struct {
	sessions session.Client
}

// NewStripeGateway builds a client bound to secretKey. baseURL overrides the
// API host when non-empty. Creates are retried safely under the
// reservation's idempotency key.
func NewStripeGateway(baseURL, secretKey string, timeout time.Duration, maxRetries int64) *StripeGateway {
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		LeveledLogger:     stripeLogger{},
		MaxNetworkRetries: stripe.Int64(maxRetries),
	}
	if baseURL != "" {
		cfg.URL = stripe.String(strings.TrimRight(baseURL, "/"))
	}
	return &StripeGateway{
		sessions: session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
			Key: secretKey,
		},
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req shared.CheckoutSessionRequest) (*shared.CheckoutSession, error) {
	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(req.ProductName),
	}
	if req.Description != "" {
		product.Description = stripe.String(req.Description)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(req.CustomerEmail),
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		ClientReferenceID:  stripe.String(req.ReservationID.String()),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(int64(req.Quantity)),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:    stripe.String(strings.ToLower(req.Currency)),
					UnitAmount:  stripe.Int64(req.UnitAmount),
					ProductData: product,
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("reservationId", req.ReservationID.String())
	params.AddMetadata("userId", req.UserID.String())
	params.AddMetadata("resourceId", req.ResourceID.String())
	// A retried create for the same reservation returns the same session.
	params.SetIdempotencyKey("checkout-" + req.ReservationID.String())

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, stripeErr(err, "failed to create checkout session")
	}
	if s.ID == "" || s.URL == "" {
		return nil, errs.New("gateway returned an incomplete checkout session")
	}
	return &shared.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*shared.GatewaySession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return nil, stripeErr(err, "failed to retrieve checkout session")
	}

	out := &shared.GatewaySession{
		ID:            s.ID,
		Paid:          s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		ReservationID: s.Metadata["reservationId"],
	}
	if s.PaymentIntent != nil {
		out.PaymentRef = s.PaymentIntent.ID
	}
	return out, nil
}

// stripeErr marks unknown sessions as ErrInvalidSession; everything else is
// an upstream failure.
func stripeErr(err error, msg string) error {
	wrapped := errs.Wrap(err, msg)
	var apiErr *stripe.Error
	if errors.As(err, &apiErr) &&
		(apiErr.HTTPStatusCode == http.StatusNotFound || apiErr.Code == stripe.ErrorCodeResourceMissing) {
		return errs.Mark(wrapped, errs.ErrInvalidSession)
	}
	return wrapped
}

// stripeLogger routes SDK logs through slog.
type stripeLogger struct{}

func (stripeLogger) Debugf(format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (stripeLogger) Infof(format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (stripeLogger) Warnf(format string, v ...interface{}) {
	slog.Warn(fmt.Sprintf(format, v...), "component", "stripe")
}

func (stripeLogger) Errorf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "stripe")
}
