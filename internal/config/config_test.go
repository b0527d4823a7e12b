package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.NotEmpty(t, cfg.AllowedOrigins)

	assert.Equal(t, DefaultMinLat, cfg.FenceMinLat)
	assert.Equal(t, DefaultMaxLat, cfg.FenceMaxLat)
	assert.Equal(t, DefaultMinLng, cfg.FenceMinLng)
	assert.Equal(t, DefaultMaxLng, cfg.FenceMaxLng)

	assert.Equal(t, 12*time.Hour, cfg.CheckinDuration)
	assert.Equal(t, 5*time.Minute, cfg.OnlineThreshold)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("PORT", "9090")
	t.Setenv("FENCE_MIN_LAT", "17.5")
	t.Setenv("CHECKIN_DURATION", "6h")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 17.5, cfg.FenceMinLat)
	assert.Equal(t, 6*time.Hour, cfg.CheckinDuration)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("CHECKIN_DURATION", "not-a-duration")
	t.Setenv("ONLINE_THRESHOLD", "-5m")

	cfg := Load()

	assert.Equal(t, 12*time.Hour, cfg.CheckinDuration)
	assert.Equal(t, 5*time.Minute, cfg.OnlineThreshold)
}
