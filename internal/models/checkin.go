package models

import (
	"time"

	"github.com/google/uuid"
)

// Checkin records an "on the water" declaration. GPSLat/GPSLng are the
// coordinates given at check-in; ActualGPSLat/ActualGPSLng track the latest
// verification ping. A row is live only while is_active AND expires_at > now;
// expiry is never swept, it is filtered at read time.
type Checkin struct {
	ID             uuid.UUID  `json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	UserID         uuid.UUID  `json:"userId"`
	GPSLat         float64    `json:"gpsLat"`
	GPSLng         float64    `json:"gpsLng"`
	ActualGPSLat   *float64   `json:"actualGpsLat,omitempty"`
	ActualGPSLng   *float64   `json:"actualGpsLng,omitempty"`
	IsActive       bool       `json:"isActive"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	LastVerifiedAt *time.Time `json:"lastVerifiedAt,omitempty"`
}
