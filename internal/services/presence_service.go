package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/models"
)

// IsOnline classifies a last-seen timestamp against the online threshold.
func IsOnline(lastSeen, now time.Time, threshold time.Duration) bool {
	return now.Sub(lastSeen) < threshold
}

// ListVisibleUsers computes the set of users visible on the map for the
// requester: opted in, located, actively checked in, and not blocked in
// either direction. Recomputed fresh on every call; nothing is cached.
func ListVisibleUsers(requester uuid.UUID) ([]models.PresenceEntry, error) {
	rows, err := database.PostgresDB.Query(`
		SELECT p.id, p.username, p.display_name, p.avatar_url, p.vessel_name, p.home_port,
		       p.latitude, p.longitude, p.last_seen
		FROM profiles p
		WHERE p.show_on_map = TRUE
		  AND p.latitude IS NOT NULL
		  AND p.longitude IS NOT NULL
		  AND EXISTS (
			SELECT 1 FROM checkins c
			WHERE c.user_id = p.id AND c.is_active = TRUE AND c.expires_at > NOW()
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM blocked_users b
			WHERE (b.blocker_id = $1 AND b.blocked_id = p.id)
			   OR (b.blocker_id = p.id AND b.blocked_id = $1)
		  )
		ORDER BY p.last_seen DESC
	`, requester)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	entries := []models.PresenceEntry{}
	for rows.Next() {
		var e models.PresenceEntry
		if err := rows.Scan(&e.User.ID, &e.User.Username, &e.User.DisplayName,
			&e.User.AvatarURL, &e.User.VesselName, &e.User.HomePort,
			&e.Latitude, &e.Longitude, &e.LastSeen); err != nil {
			continue
		}
		e.IsOnline = IsOnline(e.LastSeen, now, onlineThreshold)
		e.IsCurrentUser = e.User.ID == requester
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
