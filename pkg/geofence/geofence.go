package geofence

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// Contains reports whether the coordinate lies within the bounds.
// Boundary values are inside.
func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}

// ValidCoordinate reports whether lat/lng are plausible WGS84 values.
func ValidCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
