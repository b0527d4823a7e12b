package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/config"
)

func TestInitConnectAppliesConfig(t *testing.T) {
	cfg := &config.Config{
		FenceMinLat:     18.30,
		FenceMaxLat:     18.80,
		FenceMinLng:     -64.90,
		FenceMaxLng:     -64.20,
		CheckinDuration: 6 * time.Hour,
		OnlineThreshold: 5 * time.Minute,
	}
	InitConnect(cfg)

	bounds := FenceBounds()
	assert.True(t, bounds.Contains(18.43, -64.62))  // Road Town
	assert.True(t, bounds.Contains(18.73, -64.32))  // Anegada
	assert.False(t, bounds.Contains(18.34, -64.93)) // St. Thomas, outside
	assert.False(t, bounds.Contains(25.77, -80.19)) // Miami
}
