package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
)

type BlockRequest struct {
	UserID string `json:"userId"`
}

// ListBlocked returns everyone the caller has blocked.
func ListBlocked(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	blocked, err := services.ListBlocked(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"blockedUsers": blocked})
}

// BlockUser creates a block edge from the caller to the given user.
func BlockUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	var req BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	blockedID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	block, err := services.Block(userID, blockedID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"block": block})
}

// UnblockUser removes a block edge. Removing a non-existent edge succeeds.
func UnblockUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	// Accept the target from the body or, for convenience, the query string.
	var req BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		req.UserID = r.URL.Query().Get("userId")
	}

	blockedID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := services.Unblock(userID, blockedID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
