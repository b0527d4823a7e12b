package models

import (
	"time"

	"github.com/google/uuid"
)

// BlockedUser is a directional block edge. The guard treats it as symmetric:
// an edge in either direction blocks interaction both ways.
type BlockedUser struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	BlockerID uuid.UUID `json:"blockerId"`
	BlockedID uuid.UUID `json:"blockedId"`
}
