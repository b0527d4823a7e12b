package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var bvi = Bounds{MinLat: 18.30, MaxLat: 18.80, MinLng: -64.90, MaxLng: -64.20}

func TestContainsInside(t *testing.T) {
	// Road Harbour, Tortola
	assert.True(t, bvi.Contains(18.42, -64.62))
	// North Sound, Virgin Gorda
	assert.True(t, bvi.Contains(18.50, -64.36))
}

func TestContainsBoundaryInclusive(t *testing.T) {
	assert.True(t, bvi.Contains(bvi.MinLat, -64.62))
	assert.True(t, bvi.Contains(bvi.MaxLat, -64.62))
	assert.True(t, bvi.Contains(18.42, bvi.MinLng))
	assert.True(t, bvi.Contains(18.42, bvi.MaxLng))
	assert.True(t, bvi.Contains(bvi.MinLat, bvi.MinLng))
	assert.True(t, bvi.Contains(bvi.MaxLat, bvi.MaxLng))
}

func TestContainsOutsideSingleAxis(t *testing.T) {
	assert.False(t, bvi.Contains(18.29, -64.62), "south of the fence")
	assert.False(t, bvi.Contains(18.81, -64.62), "north of the fence")
	assert.False(t, bvi.Contains(18.42, -64.91), "west of the fence")
	assert.False(t, bvi.Contains(18.42, -64.19), "east of the fence")
	// St. Thomas is outside the service region
	assert.False(t, bvi.Contains(18.34, -64.93))
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, ValidCoordinate(18.42, -64.62))
	assert.True(t, ValidCoordinate(-90, 180))
	assert.False(t, ValidCoordinate(90.1, 0))
	assert.False(t, ValidCoordinate(-91, 0))
	assert.False(t, ValidCoordinate(0, 180.5))
	assert.False(t, ValidCoordinate(0, -181))
}
