package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/models"
)

// IsBlocked reports whether a block edge exists in either direction.
// Consulted before presence exposure, conversation creation and message send.
func IsBlocked(a, b uuid.UUID) (bool, error) {
	var exists bool
	err := database.PostgresDB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM blocked_users
			WHERE (blocker_id = $1 AND blocked_id = $2)
			   OR (blocker_id = $2 AND blocked_id = $1)
		)
	`, a, b).Scan(&exists)
	return exists, err
}

// Block creates a directional block edge. Fails with ErrSelfTarget when
// blocker == blocked and ErrAlreadyBlocked when the edge already exists
// (backed by the unique constraint, so concurrent blocks cannot double up).
func Block(blocker, blocked uuid.UUID) (*models.BlockedUser, error) {
	if blocker == blocked {
		return nil, ErrSelfTarget
	}

	edge := models.BlockedUser{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		BlockerID: blocker,
		BlockedID: blocked,
	}

	_, err := database.PostgresDB.Exec(`
		INSERT INTO blocked_users (id, created_at, blocker_id, blocked_id)
		VALUES ($1, $2, $3, $4)
	`, edge.ID, edge.CreatedAt, edge.BlockerID, edge.BlockedID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrAlreadyBlocked
		}
		return nil, err
	}

	return &edge, nil
}

// Unblock removes a directional block edge. Removing a non-existent edge is a
// no-op success.
func Unblock(blocker, blocked uuid.UUID) error {
	_, err := database.PostgresDB.Exec(`
		DELETE FROM blocked_users WHERE blocker_id = $1 AND blocked_id = $2
	`, blocker, blocked)
	return err
}

// BlockedEntry is one row of the caller's block list.
type BlockedEntry struct {
	ID        uuid.UUID           `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	User      models.PresenceUser `json:"user"`
}

// ListBlocked returns everyone the caller has blocked, newest first.
func ListBlocked(blocker uuid.UUID) ([]BlockedEntry, error) {
	rows, err := database.PostgresDB.Query(`
		SELECT b.id, b.created_at, p.id, p.username, p.display_name, p.avatar_url, p.vessel_name, p.home_port
		FROM blocked_users b
		JOIN profiles p ON b.blocked_id = p.id
		WHERE b.blocker_id = $1
		ORDER BY b.created_at DESC
	`, blocker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []BlockedEntry{}
	for rows.Next() {
		var e BlockedEntry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.User.ID, &e.User.Username,
			&e.User.DisplayName, &e.User.AvatarURL, &e.User.VesselName, &e.User.HomePort); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
