package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOnline(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	threshold := 5 * time.Minute

	assert.True(t, IsOnline(now.Add(-1*time.Minute), now, threshold))
	assert.True(t, IsOnline(now, now, threshold))

	// Exactly at the threshold counts as offline.
	assert.False(t, IsOnline(now.Add(-5*time.Minute), now, threshold))
	assert.False(t, IsOnline(now.Add(-time.Hour), now, threshold))
}

func TestIsOnlineZeroLastSeen(t *testing.T) {
	now := time.Now()
	assert.False(t, IsOnline(time.Time{}, now, 5*time.Minute))
}
