package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/models"
)

const profileColumns = `id, created_at, updated_at, username, display_name, avatar_url,
	vessel_name, home_port, bio, latitude, longitude, show_on_map, last_seen`

func scanProfile(row *sql.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Username, &p.DisplayName,
		&p.AvatarURL, &p.VesselName, &p.HomePort, &p.Bio,
		&p.Latitude, &p.Longitude, &p.ShowOnMap, &p.LastSeen)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetProfileByID returns the full profile for a user.
func GetProfileByID(userID uuid.UUID) (*models.Profile, error) {
	row := database.PostgresDB.QueryRow(`
		SELECT `+profileColumns+` FROM profiles WHERE id = $1
	`, userID)
	return scanProfile(row)
}

// GetPresenceUser returns the public slice of a profile.
func GetPresenceUser(userID uuid.UUID) (*models.PresenceUser, error) {
	var u models.PresenceUser
	err := database.PostgresDB.QueryRow(`
		SELECT id, username, display_name, avatar_url, vessel_name, home_port
		FROM profiles WHERE id = $1
	`, userID).Scan(&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.VesselName, &u.HomePort)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUserIDByUsername retrieves user ID by username (case-insensitive).
// Returns uuid.Nil with no error when the username is unknown.
func GetUserIDByUsername(username string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := database.PostgresDB.QueryRow(`
		SELECT id FROM profiles WHERE LOWER(username) = LOWER($1)
	`, username).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, nil
		}
		return uuid.Nil, err
	}
	return userID, nil
}

// GetPasswordHashByUsername returns (id, hash) for sign-in.
func GetPasswordHashByUsername(username string) (uuid.UUID, string, error) {
	var userID uuid.UUID
	var hash string
	err := database.PostgresDB.QueryRow(`
		SELECT id, password_hash FROM profiles WHERE LOWER(username) = LOWER($1)
	`, username).Scan(&userID, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, "", ErrNotFound
		}
		return uuid.Nil, "", err
	}
	return userID, hash, nil
}

// CreateProfile inserts a new account row and returns the profile.
func CreateProfile(username, passwordHash string) (*models.Profile, error) {
	id := uuid.New()
	now := time.Now()
	_, err := database.PostgresDB.Exec(`
		INSERT INTO profiles (id, created_at, updated_at, username, password_hash, display_name, last_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, now, now, username, passwordHash, username, now)
	if err != nil {
		return nil, err
	}
	return GetProfileByID(id)
}

// ProfileUpdate carries the user-editable profile fields. Nil pointers leave
// the stored value untouched.
type ProfileUpdate struct {
	DisplayName *string
	VesselName  *string
	HomePort    *string
	Bio         *string
	ShowOnMap   *bool
}

// UpdateProfile applies a partial update and returns the fresh profile.
func UpdateProfile(userID uuid.UUID, upd ProfileUpdate) (*models.Profile, error) {
	_, err := database.PostgresDB.Exec(`
		UPDATE profiles SET
			display_name = COALESCE($1, display_name),
			vessel_name  = COALESCE($2, vessel_name),
			home_port    = COALESCE($3, home_port),
			bio          = COALESCE($4, bio),
			show_on_map  = COALESCE($5, show_on_map),
			updated_at   = NOW()
		WHERE id = $6
	`, upd.DisplayName, upd.VesselName, upd.HomePort, upd.Bio, upd.ShowOnMap, userID)
	if err != nil {
		return nil, err
	}
	return GetProfileByID(userID)
}

// SetAvatarURL stores the uploaded avatar location.
func SetAvatarURL(userID uuid.UUID, url string) error {
	_, err := database.PostgresDB.Exec(`
		UPDATE profiles SET avatar_url = $1, updated_at = NOW() WHERE id = $2
	`, url, userID)
	return err
}

// UpdateLocation records the latest GPS fix and bumps last_seen.
func UpdateLocation(userID uuid.UUID, lat, lng float64) error {
	_, err := database.PostgresDB.Exec(`
		UPDATE profiles SET latitude = $1, longitude = $2, last_seen = NOW(), updated_at = NOW()
		WHERE id = $3
	`, lat, lng, userID)
	return err
}

// TouchLastSeen bumps last_seen without moving the pin.
func TouchLastSeen(userID uuid.UUID) error {
	_, err := database.PostgresDB.Exec(`
		UPDATE profiles SET last_seen = NOW() WHERE id = $1
	`, userID)
	return err
}

// GoOffline clears the stored coordinates so the user drops off the map.
func GoOffline(userID uuid.UUID) error {
	_, err := database.PostgresDB.Exec(`
		UPDATE profiles SET latitude = NULL, longitude = NULL, updated_at = NOW() WHERE id = $1
	`, userID)
	return err
}
