package models

import (
	"time"

	"github.com/google/uuid"
)

// PresenceUser is the public slice of a profile exposed on the map and in
// conversation listings.
type PresenceUser struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl,omitempty"`
	VesselName  *string   `json:"vesselName,omitempty"`
	HomePort    *string   `json:"homePort,omitempty"`
}

// PresenceEntry is one pin on the presence map.
type PresenceEntry struct {
	User          PresenceUser `json:"user"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	LastSeen      time.Time    `json:"lastSeen"`
	IsOnline      bool         `json:"isOnline"`
	IsCurrentUser bool         `json:"isCurrentUser"`
}
