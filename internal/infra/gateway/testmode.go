package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/shared"
)

const (
	testSessionPrefix = "test_session_"
	testPaymentPrefix = "test_pi_"
	// SessionIDPlaceholder is substituted with the session id in success URLs.
	SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"
)

// TestGateway issues local session ids and reports every one of them as
// paid. The checkout URL points straight at the success page.
type TestGateway struct{}

func NewTestGateway() *TestGateway {
	return &TestGateway{}
}

func (g *TestGateway) CreateCheckoutSession(_ context.Context, req shared.CheckoutSessionRequest) (*shared.CheckoutSession, error) {
	suffix, err := randomSuffix()
	if err != nil {
		return nil, err
	}
	id := testSessionPrefix + suffix
	return &shared.CheckoutSession{
		ID:  id,
		URL: strings.ReplaceAll(req.SuccessURL, SessionIDPlaceholder, id),
	}, nil
}

func (g *TestGateway) RetrieveSession(_ context.Context, sessionID string) (*shared.GatewaySession, error) {
	suffix, ok := strings.CutPrefix(sessionID, testSessionPrefix)
	if !ok || suffix == "" {
		return nil, errs.Wrapf(errs.ErrInvalidSession, "not a test session: %q", sessionID)
	}
	return &shared.GatewaySession{
		ID:         sessionID,
		Paid:       true,
		PaymentRef: testPaymentPrefix + suffix,
	}, nil
}

func IsTestSession(sessionID string) bool {
	return strings.HasPrefix(sessionID, testSessionPrefix)
}

func randomSuffix() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", errs.Wrap(err, "failed to generate session id")
	}
	return hex.EncodeToString(b), nil
}
