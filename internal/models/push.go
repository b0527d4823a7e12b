package models

import (
	"time"

	"github.com/google/uuid"
)

// WebPushKeys are the browser-generated encryption keys of a subscription.
type WebPushKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// WebPushSubscription mirrors the PushSubscription JSON produced by the
// browser's Push API. Stored opaque in JSONB.
type WebPushSubscription struct {
	Endpoint string      `json:"endpoint"`
	Keys     WebPushKeys `json:"keys"`
}

// PushSubscription is a user's registered push endpoint (at most one per user).
type PushSubscription struct {
	UserID       uuid.UUID           `json:"userId"`
	Subscription WebPushSubscription `json:"subscription"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}
