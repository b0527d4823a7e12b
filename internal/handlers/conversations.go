package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/models"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
)

type CreateConversationRequest struct {
	UserID string `json:"userId"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// ListConversations returns the caller's inbox.
func ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	conversations, err := services.ListConversations(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"conversations": conversations})
}

// CreateConversation gets or creates the single conversation with another user.
func CreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	otherID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	conversation, err := services.GetOrCreateConversation(userID, otherID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"conversation": conversation})
}

// conversationIDFromURL parses the {id} path parameter.
func conversationIDFromURL(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ListMessages returns one chronological page of a conversation and marks the
// counterpart's messages as read.
// Query params:
//
//	before (optional RFC3339 timestamp, exclusive bound for backward paging)
//	limit  (optional, default 50)
func ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	conversationID, ok := conversationIDFromURL(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	limit := 50
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if parsed, err := strconv.Atoi(lStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var before *time.Time
	if bStr := r.URL.Query().Get("before"); bStr != "" {
		if t, err := time.Parse(time.RFC3339, bStr); err == nil {
			before = &t
		}
	}

	messages, hasMore, err := services.ListMessages(conversationID, userID, limit, before)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"hasMore":  hasMore,
	})
}

// SendMessage appends a message to a conversation.
func SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	conversationID, ok := conversationIDFromURL(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid conversation ID")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	message, err := services.SendMessage(conversationID, userID, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"message": message})
}

// GetUnreadCount returns the caller's total unread message count.
func GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	count, err := services.UnreadCount(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"unreadCount": count})
}
