//go:build unit

package config_test

import (
	"math"
	"testing"

	"flight-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.RateLimitConfig
		wantErr bool
	}{
		{name: "正常な設定", cfg: config.RateLimitConfig{Enabled: true, Rate: 5, Burst: 20}},
		{name: "無効化されていればレートは問わない", cfg: config.RateLimitConfig{Enabled: false, Rate: 0, Burst: 0}},
		{name: "レート0はエラー", cfg: config.RateLimitConfig{Enabled: true, Rate: 0, Burst: 20}, wantErr: true},
		{name: "負のレートはエラー", cfg: config.RateLimitConfig{Enabled: true, Rate: -1, Burst: 20}, wantErr: true},
		{name: "NaNはエラー", cfg: config.RateLimitConfig{Enabled: true, Rate: math.NaN(), Burst: 20}, wantErr: true},
		{name: "無限大はエラー", cfg: config.RateLimitConfig{Enabled: true, Rate: math.Inf(1), Burst: 20}, wantErr: true},
		{name: "バースト0はエラー", cfg: config.RateLimitConfig{Enabled: true, Rate: 5, Burst: 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewTestConfigIsValid(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.RateLimit.Enabled = true
	assert.NoError(t, cfg.RateLimit.Validate())
}
