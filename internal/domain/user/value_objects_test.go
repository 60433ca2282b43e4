//go:build unit

package user_test

import (
	"strings"
	"testing"

	"flight-booking/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("前後の空白を除き小文字に揃える", func(t *testing.T) {
		email, err := user.NewEmail("  Ana.Pereira@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, "ana.pereira@example.com", email.Value())
	})

	t.Run("形式が不正ならエラー", func(t *testing.T) {
		_, err := user.NewEmail("ana@")
		assert.ErrorIs(t, err, user.ErrInvalidEmail)
	})
}

func TestNewPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		errIs error
	}{
		{"8文字OK", "abcdefgh", nil},
		{"72バイトOK", strings.Repeat("a", 72), nil},
		{"7文字NG", "abcdefg", user.ErrPasswordTooWeak},
		{"73バイトNG", strings.Repeat("a", 73), user.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := user.NewPassword(tt.input)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, p.Value())
		})
	}
}
