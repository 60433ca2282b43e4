//go:build unit

package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{"一致する", hash, "correct-horse-battery", nil},
		{"不一致", hash, "wrong-password", ErrComparisonFailed},
		{"空のパスワード", hash, "", ErrInvalidPassword},
		{"空のハッシュ", "", "correct-horse-battery", ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ComparePassword(tt.hash, tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestCompareDummyNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() { CompareDummy("anything") })
}
