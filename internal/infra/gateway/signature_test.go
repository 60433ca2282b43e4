//go:build unit

package gateway_test

import (
	"testing"
	"time"

	"flight-booking/internal/infra/gateway"
	"flight-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completedPayload = `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_test_1","object":"checkout.session","payment_intent":"pi_1"}}}`

func TestSignatureVerifier(t *testing.T) {
	// the tolerance window is measured against the wall clock
	now := time.Now()
	verifier := gateway.NewSignatureVerifier("whsec_test", 5*time.Minute)

	t.Run("正しい署名はイベントを返す", func(t *testing.T) {
		header := verifier.Sign([]byte(completedPayload), now)

		event, err := verifier.Verify([]byte(completedPayload), header)
		require.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, "checkout.session.completed", event.Type)
		assert.Equal(t, "cs_test_1", event.SessionID)
		assert.Equal(t, "pi_1", event.PaymentRef)
	})

	t.Run("複数のv1のうち一つが一致すればOK", func(t *testing.T) {
		valid := verifier.Sign([]byte(completedPayload), now)
		header := valid + ",v1=00ff"

		_, err := verifier.Verify([]byte(completedPayload), header)
		require.NoError(t, err)
	})

	t.Run("charge.refundedはセッションIDを持たない", func(t *testing.T) {
		payload := []byte(`{"id":"evt_2","type":"charge.refunded","data":{"object":{"id":"ch_1","object":"charge","payment_intent":"pi_1"}}}`)
		event, err := verifier.Verify(payload, verifier.Sign(payload, now))
		require.NoError(t, err)
		assert.Empty(t, event.SessionID)
		assert.Equal(t, "pi_1", event.PaymentRef)
	})

	cases := []struct {
		name    string
		payload string
		header  func() string
		errIs   error
	}{
		{
			name:    "ヘッダなしNG",
			payload: completedPayload,
			header:  func() string { return "" },
			errIs:   gateway.ErrMissingSignature,
		},
		{
			name:    "形式不正NG",
			payload: completedPayload,
			header:  func() string { return "garbage" },
			errIs:   gateway.ErrMalformedHeader,
		},
		{
			name:    "タイムスタンプなしNG",
			payload: completedPayload,
			header:  func() string { return "v1=abcd" },
			errIs:   errs.ErrInvalidSignature,
		},
		{
			name:    "許容時間外NG",
			payload: completedPayload,
			header:  func() string { return verifier.Sign([]byte(completedPayload), now.Add(-10*time.Minute)) },
			errIs:   gateway.ErrSignatureExpired,
		},
		{
			name:    "本文改ざんNG",
			payload: `{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_other"}}}`,
			header:  func() string { return verifier.Sign([]byte(completedPayload), now) },
			errIs:   gateway.ErrSignatureInvalid,
		},
		{
			name:    "別シークレットNG",
			payload: completedPayload,
			header: func() string {
				other := gateway.NewSignatureVerifier("whsec_other", 5*time.Minute)
				return other.Sign([]byte(completedPayload), now)
			},
			errIs: gateway.ErrSignatureInvalid,
		},
		{
			name:    "署名済みだがJSON不正NG",
			payload: `not-json`,
			header:  func() string { return verifier.Sign([]byte(`not-json`), now) },
			errIs:   gateway.ErrMalformedEvent,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := verifier.Verify([]byte(tc.payload), tc.header())
			require.Error(t, err)
			assert.True(t, errs.Is(err, tc.errIs), "got %v", err)
			assert.True(t, errs.Is(err, errs.ErrInvalidSignature))
		})
	}
}

func TestSignatureVerifierFailureKinds(t *testing.T) {
	verifier := gateway.NewSignatureVerifier("whsec_test", 5*time.Minute)
	header := verifier.Sign([]byte(completedPayload), time.Now().Add(-time.Hour))

	_, err := verifier.Verify([]byte(completedPayload), header)
	require.Error(t, err)
	assert.True(t, errs.Is(err, gateway.ErrSignatureExpired))
	assert.False(t, errs.Is(err, gateway.ErrSignatureInvalid))
	assert.False(t, errs.Is(err, gateway.ErrMalformedEvent))
}
