//go:build unit || e2e

package helper

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// PerformRawRequest sends body verbatim with the given headers. Signature
// checks need the exact bytes, so JSON encoding is left to the caller.
func PerformRawRequest(t *testing.T, router *gin.Engine, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Signer produces a payment gateway signature header for a payload.
type Signer interface {
	Sign(payload []byte, at time.Time) string
}

// WebhookPayload builds a checkout session event as the gateway sends it.
func WebhookPayload(eventType, sessionID, paymentRef string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_%s","type":%q,"data":{"object":{"id":%q,"object":"checkout.session","payment_intent":%q}}}`,
		sessionID, eventType, sessionID, paymentRef,
	))
}

func PerformWebhook(t *testing.T, router *gin.Engine, signer Signer, payload []byte, at time.Time) *httptest.ResponseRecorder {
	t.Helper()

	return PerformRawRequest(t, router, "POST", "/api/webhooks/payment-gateway", payload, map[string]string{
		"Content-Type":     "application/json",
		"Stripe-Signature": signer.Sign(payload, at),
	})
}
