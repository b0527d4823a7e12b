package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
)

// extractBearerToken pulls the token out of an "Authorization: Bearer x" header.
func extractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUser resolves the caller identity from the session token.
// Returns (uuid.Nil, false) when the request is unauthenticated.
func currentUser(r *http.Request) (uuid.UUID, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return uuid.Nil, false
	}
	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		return uuid.Nil, false
	}
	return userID, true
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes the standard {"error": "..."} envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondUnauthenticated is the shared 401 reply.
func respondUnauthenticated(w http.ResponseWriter) {
	respondError(w, http.StatusUnauthorized, "You must be signed in")
}

// respondServiceError maps domain errors onto HTTP statuses; anything
// unrecognized is logged and reported as a generic 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch err {
	case services.ErrNotFound:
		respondError(w, http.StatusNotFound, "Not found")
	case services.ErrNotCheckedIn:
		respondError(w, http.StatusForbidden, "No active check-in")
	case services.ErrBlocked:
		respondError(w, http.StatusForbidden, "You cannot interact with this user")
	case services.ErrNotParticipant, services.ErrForbidden:
		respondError(w, http.StatusForbidden, "You do not have access to this conversation")
	case services.ErrAlreadyBlocked:
		respondError(w, http.StatusBadRequest, "User is already blocked")
	case services.ErrSelfTarget:
		respondError(w, http.StatusBadRequest, "You cannot target yourself")
	case services.ErrInvalidInput:
		respondError(w, http.StatusBadRequest, "Invalid input")
	case services.ErrEmptyMessage:
		respondError(w, http.StatusBadRequest, "Message cannot be empty")
	case services.ErrMessageTooLong:
		respondError(w, http.StatusBadRequest, "Message is too long (max 2000 characters)")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
