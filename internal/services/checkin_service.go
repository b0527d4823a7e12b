package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/config"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/models"
	"github.com/tradewinds-bvi/tradewinds-backend/pkg/geofence"
)

var (
	fenceBounds     geofence.Bounds
	checkinDuration time.Duration
	onlineThreshold time.Duration
)

// InitConnect wires the presence/check-in settings from config. Called once
// from main before the router starts.
func InitConnect(cfg *config.Config) {
	fenceBounds = geofence.Bounds{
		MinLat: cfg.FenceMinLat,
		MaxLat: cfg.FenceMaxLat,
		MinLng: cfg.FenceMinLng,
		MaxLng: cfg.FenceMaxLng,
	}
	checkinDuration = cfg.CheckinDuration
	onlineThreshold = cfg.OnlineThreshold
}

// FenceBounds returns the configured service-region bounds.
func FenceBounds() geofence.Bounds {
	return fenceBounds
}

const checkinColumns = `id, created_at, user_id, gps_lat, gps_lng,
	actual_gps_lat, actual_gps_lng, is_active, expires_at, last_verified_at`

func scanCheckin(row *sql.Row) (*models.Checkin, error) {
	var c models.Checkin
	err := row.Scan(&c.ID, &c.CreatedAt, &c.UserID, &c.GPSLat, &c.GPSLng,
		&c.ActualGPSLat, &c.ActualGPSLng, &c.IsActive, &c.ExpiresAt, &c.LastVerifiedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}
	return &c, nil
}

// GetActiveCheckin returns the user's live check-in: is_active and not yet
// expired. The single-active invariant is enforced by query filters, not a DB
// constraint, so if multiple rows slip through the most recent one wins.
func GetActiveCheckin(userID uuid.UUID) (*models.Checkin, error) {
	row := database.PostgresDB.QueryRow(`
		SELECT `+checkinColumns+`
		FROM checkins
		WHERE user_id = $1 AND is_active = TRUE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)
	return scanCheckin(row)
}

// HasActiveCheckin reports whether the user is currently checked in.
func HasActiveCheckin(userID uuid.UUID) (bool, error) {
	var exists bool
	err := database.PostgresDB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM checkins
			WHERE user_id = $1 AND is_active = TRUE AND expires_at > NOW()
		)
	`, userID).Scan(&exists)
	return exists, err
}

// CreateCheckin checks a user in at the given coordinates. Any prior active
// row is deactivated first so at most one live check-in exists per user.
// Fails with ErrInvalidInput when the coordinates fall outside the fence.
func CreateCheckin(userID uuid.UUID, lat, lng float64) (*models.Checkin, error) {
	if !geofence.ValidCoordinate(lat, lng) || !fenceBounds.Contains(lat, lng) {
		return nil, ErrInvalidInput
	}

	_, err := database.PostgresDB.Exec(`
		UPDATE checkins SET is_active = FALSE WHERE user_id = $1 AND is_active = TRUE
	`, userID)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	now := time.Now()
	expiresAt := now.Add(checkinDuration)
	_, err = database.PostgresDB.Exec(`
		INSERT INTO checkins (id, created_at, user_id, gps_lat, gps_lng, is_active, expires_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
	`, id, now, userID, lat, lng, expiresAt)
	if err != nil {
		return nil, err
	}

	// Checking in also places the pin and refreshes presence.
	if err := UpdateLocation(userID, lat, lng); err != nil {
		return nil, err
	}

	LogCheckinEventAsync(CheckinEvent{
		UserID: userID.String(),
		Event:  EventCheckedIn,
		Lat:    lat,
		Lng:    lng,
	})

	return GetActiveCheckin(userID)
}

// VerifyCheckin handles a GPS verification ping. Inside the fence it records
// the actual position and last_verified_at without extending expires_at.
// Outside the fence it deactivates the check-in immediately and reports
// checkedOut = true.
func VerifyCheckin(userID uuid.UUID, lat, lng float64) (*models.Checkin, bool, error) {
	if !geofence.ValidCoordinate(lat, lng) {
		return nil, false, ErrInvalidInput
	}

	checkin, err := GetActiveCheckin(userID)
	if err != nil {
		return nil, false, err
	}

	if !fenceBounds.Contains(lat, lng) {
		_, err = database.PostgresDB.Exec(`
			UPDATE checkins SET is_active = FALSE, actual_gps_lat = $1, actual_gps_lng = $2, last_verified_at = NOW()
			WHERE id = $3
		`, lat, lng, checkin.ID)
		if err != nil {
			return nil, false, err
		}

		LogCheckinEventAsync(CheckinEvent{
			UserID: userID.String(),
			Event:  EventOutOfBounds,
			Lat:    lat,
			Lng:    lng,
		})

		return nil, true, nil
	}

	_, err = database.PostgresDB.Exec(`
		UPDATE checkins SET actual_gps_lat = $1, actual_gps_lng = $2, last_verified_at = NOW()
		WHERE id = $3
	`, lat, lng, checkin.ID)
	if err != nil {
		return nil, false, err
	}

	if err := UpdateLocation(userID, lat, lng); err != nil {
		return nil, false, err
	}

	LogCheckinEventAsync(CheckinEvent{
		UserID: userID.String(),
		Event:  EventVerified,
		Lat:    lat,
		Lng:    lng,
	})

	updated, err := GetActiveCheckin(userID)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

// Checkout deactivates the user's active check-in. Returns ErrNotCheckedIn
// when there is nothing to check out of.
func Checkout(userID uuid.UUID) error {
	res, err := database.PostgresDB.Exec(`
		UPDATE checkins SET is_active = FALSE
		WHERE user_id = $1 AND is_active = TRUE AND expires_at > NOW()
	`, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotCheckedIn
	}

	LogCheckinEventAsync(CheckinEvent{
		UserID: userID.String(),
		Event:  EventCheckedOut,
	})

	return nil
}
