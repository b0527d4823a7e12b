package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a boater's public profile. Latitude/longitude are nil until the
// first GPS ping and cleared again when the user goes offline explicitly.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl,omitempty"`
	VesselName  *string   `json:"vesselName,omitempty"`
	HomePort    *string   `json:"homePort,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	ShowOnMap   bool      `json:"showOnMap"`
	LastSeen    time.Time `json:"lastSeen"`
}
