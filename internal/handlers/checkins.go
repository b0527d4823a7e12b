package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
)

type CheckinRequest struct {
	GPSLat *float64 `json:"gpsLat"`
	GPSLng *float64 `json:"gpsLng"`
}

// CreateCheckin checks the caller in at the given coordinates.
func CreateCheckin(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	var req CheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GPSLat == nil || req.GPSLng == nil {
		respondError(w, http.StatusBadRequest, "gpsLat and gpsLng are required")
		return
	}

	checkin, err := services.CreateCheckin(userID, *req.GPSLat, *req.GPSLng)
	if err != nil {
		if err == services.ErrInvalidInput {
			respondError(w, http.StatusBadRequest, "Location is outside the service area")
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"checkin": checkin})
}

// VerifyCheckin handles the periodic GPS verification ping. A ping outside
// the fence checks the user out and reports it with checkedOut: true.
func VerifyCheckin(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	var req CheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GPSLat == nil || req.GPSLng == nil {
		respondError(w, http.StatusBadRequest, "gpsLat and gpsLng are required")
		return
	}

	checkin, checkedOut, err := services.VerifyCheckin(userID, *req.GPSLat, *req.GPSLng)
	if err != nil {
		switch err {
		case services.ErrInvalidInput:
			respondError(w, http.StatusBadRequest, "Invalid coordinates")
		case services.ErrNotCheckedIn:
			respondError(w, http.StatusNotFound, "No active check-in")
		default:
			respondServiceError(w, err)
		}
		return
	}

	if checkedOut {
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      "You have left the service area and were checked out",
			"checkedOut": true,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"checkin": checkin})
}

// GetMyCheckin returns the caller's active check-in, if any.
func GetMyCheckin(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	checkin, err := services.GetActiveCheckin(userID)
	if err != nil {
		if err == services.ErrNotCheckedIn {
			respondJSON(w, http.StatusOK, map[string]interface{}{"checkin": nil})
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"checkin": checkin})
}

// Checkout manually ends the caller's active check-in.
func Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	if err := services.Checkout(userID); err != nil {
		if err == services.ErrNotCheckedIn {
			respondError(w, http.StatusNotFound, "No active check-in")
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetCheckinActivity returns the caller's paginated check-in event history.
// Query params:
//
//	before (optional RFC3339 timestamp for pagination)
//	limit  (optional, default 50)
func GetCheckinActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	limit := int64(50)
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if parsed, err := strconv.ParseInt(lStr, 10, 64); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var before *time.Time
	if bStr := r.URL.Query().Get("before"); bStr != "" {
		if t, err := time.Parse(time.RFC3339, bStr); err == nil {
			before = &t
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	events, hasMore, err := services.LoadCheckinEvents(ctx, userID.String(), before, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if events == nil {
		events = []services.CheckinEvent{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events":  events,
		"hasMore": hasMore,
	})
}
