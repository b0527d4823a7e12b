package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/models"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
)

type SaveSubscriptionRequest struct {
	Subscription models.WebPushSubscription `json:"subscription"`
}

type SendPushRequest struct {
	RecipientUserID string `json:"recipientUserId"`
	Title           string `json:"title"`
	Body            string `json:"body"`
	URL             string `json:"url"`
	Tag             string `json:"tag"`
}

// GetVAPIDKey exposes the public VAPID key so clients can subscribe.
func GetVAPIDKey(w http.ResponseWriter, r *http.Request) {
	if !services.PushConfigured() {
		respondError(w, http.StatusServiceUnavailable, "Push notifications are not available")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"publicKey": services.VAPIDPublicKey()})
}

// SaveSubscription stores the caller's web push subscription.
func SaveSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	var req SaveSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Subscription.Endpoint == "" {
		respondError(w, http.StatusBadRequest, "Subscription endpoint is required")
		return
	}

	if err := services.SaveSubscription(userID, req.Subscription); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// DeleteSubscription removes the caller's web push subscription.
func DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	if err := services.DeleteSubscription(userID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SendPush delivers a notification to one user's registered endpoints and
// reports per-endpoint counts. Delivery problems never surface as an HTTP
// error; they only show up in the counts.
func SendPush(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(r); !ok {
		respondUnauthenticated(w)
		return
	}

	var req SendPushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipient, err := uuid.Parse(req.RecipientUserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid recipient user ID")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	result := services.Notify(recipient, req.Title, req.Body, req.URL, req.Tag)
	respondJSON(w, http.StatusOK, result)
}
