package handlers

import (
	"net/http"

	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
)

// GetPresence returns the users currently visible on the map for the caller.
func GetPresence(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	users, err := services.ListVisibleUsers(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}
