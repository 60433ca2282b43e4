package gateway

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/shared"

	"github.com/stripe/stripe-go/v82/webhook"
)

// Every verification failure also matches errs.ErrInvalidSignature.
var (
	ErrMissingSignature = errs.New("signature header missing")
	ErrMalformedHeader  = errs.New("signature header malformed")
	ErrSignatureExpired = errs.New("signature timestamp outside tolerance")
	ErrSignatureInvalid = errs.New("no signature matches payload")
	ErrMalformedEvent   = errs.New("event payload malformed")
)

// SignatureVerifier authenticates Stripe-Signature headers
// ("t=<unix>,v1=<hex>") against the endpoint's webhook secret.
type SignatureVerifier struct {
	secret    string
	tolerance time.Duration
}

func NewSignatureVerifier(secret string, tolerance time.Duration) *SignatureVerifier {
	return &SignatureVerifier{secret: secret, tolerance: tolerance}
}

// eventObject holds the fields read from data.object of every handled event
// type; payment_intent is an id string on both sessions and charges.
type eventObject struct {
	ID            string `json:"id"`
	Object        string `json:"object"`
	PaymentIntent string `json:"payment_intent"`
}

func (v *SignatureVerifier) Verify(payload []byte, signatureHeader string) (*shared.GatewayEvent, error) {
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, errs.Mark(ErrMissingSignature, errs.ErrInvalidSignature)
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, verifyErr(err)
	}
	if evt.Type == "" || evt.Data == nil {
		return nil, errs.Mark(ErrMalformedEvent, errs.ErrInvalidSignature)
	}

	var obj eventObject
	if err := json.Unmarshal(evt.Data.Raw, &obj); err != nil {
		return nil, rejected(err, ErrMalformedEvent)
	}

	event := &shared.GatewayEvent{
		ID:         evt.ID,
		Type:       string(evt.Type),
		PaymentRef: obj.PaymentIntent,
	}
	if obj.Object == "checkout.session" || strings.HasPrefix(event.Type, "checkout.session.") {
		event.SessionID = obj.ID
	}
	return event, nil
}

// Sign builds a header value for payload at the given time.
func (v *SignatureVerifier) Sign(payload []byte, at time.Time) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    v.secret,
		Timestamp: at,
	}).Header
}

func verifyErr(err error) error {
	switch {
	case errors.Is(err, webhook.ErrNotSigned):
		return rejected(err, ErrMissingSignature)
	case errors.Is(err, webhook.ErrInvalidHeader):
		return rejected(err, ErrMalformedHeader)
	case errors.Is(err, webhook.ErrTooOld):
		return rejected(err, ErrSignatureExpired)
	case errors.Is(err, webhook.ErrNoValidSignature):
		return rejected(err, ErrSignatureInvalid)
	default:
		return rejected(err, ErrMalformedEvent)
	}
}

func rejected(err, kind error) error {
	return errs.Mark(errs.Mark(err, kind), errs.ErrInvalidSignature)
}
