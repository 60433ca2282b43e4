//go:build unit

package auth_test

import (
	"bytes"
	"log/slog"
	"testing"

	"flight-booking/internal/domain/auth"
	"flight-booking/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		errIs    error
	}{
		{"正常", "Ana@Example.com", "correct-horse-battery", nil},
		{"メール不正", "not-an-email", "correct-horse-battery", user.ErrInvalidEmail},
		{"パスワード短すぎ", "ana@example.com", "short", user.ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := auth.NewCredentials(tt.email, tt.password)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ana@example.com", c.Email().Value())
			assert.Equal(t, tt.password, c.Password().Value())
		})
	}
}

func TestCredentialsLogValueHidesPassword(t *testing.T) {
	c, err := auth.NewCredentials("ana@example.com", "correct-horse-battery")
	require.NoError(t, err)

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("login", "credentials", c)

	assert.Contains(t, buf.String(), "credentials.email=ana@example.com")
	assert.NotContains(t, buf.String(), "correct-horse-battery")
}
