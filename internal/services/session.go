package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/database"
)

const (
	// SessionDuration is 30 days
	SessionDuration = 30 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// CreateSession creates a new session for a user and stores it in Redis.
// Any existing session is invalidated first so the expiry timer resets from
// the current sign-in. Returns the session token.
func CreateSession(userID uuid.UUID) (string, error) {
	InvalidateUserSessions(userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	sessionToken := base64.URLEncoding.EncodeToString(tokenBytes)

	ctx := context.Background()
	sessionKey := SessionKeyPrefix + sessionToken
	userSessionKey := UserSessionKeyPrefix + userID.String()

	if err := database.RedisClient.Set(ctx, sessionKey, userID.String(), SessionDuration).Err(); err != nil {
		return "", err
	}

	if err := database.RedisClient.Set(ctx, userSessionKey, sessionToken, SessionDuration).Err(); err != nil {
		return "", err
	}

	return sessionToken, nil
}

// ValidateSession checks if a session token is valid and returns the user ID
func ValidateSession(sessionToken string) (uuid.UUID, bool, error) {
	if sessionToken == "" {
		return uuid.Nil, false, nil
	}

	ctx := context.Background()
	sessionKey := SessionKeyPrefix + sessionToken

	userIDStr, err := database.RedisClient.Get(ctx, sessionKey).Result()
	if err != nil {
		return uuid.Nil, false, nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, err
	}

	return userID, true, nil
}

// InvalidateSession removes a session from Redis
func InvalidateSession(sessionToken string) error {
	if sessionToken == "" {
		return nil
	}

	ctx := context.Background()
	sessionKey := SessionKeyPrefix + sessionToken

	// Get user ID before deleting so the reverse mapping goes too
	userIDStr, err := database.RedisClient.Get(ctx, sessionKey).Result()
	if err == nil && userIDStr != "" {
		userSessionKey := UserSessionKeyPrefix + userIDStr
		database.RedisClient.Del(ctx, userSessionKey)
	}

	return database.RedisClient.Del(ctx, sessionKey).Err()
}

// InvalidateUserSessions invalidates the current session for a user (useful when password changes)
func InvalidateUserSessions(userID uuid.UUID) error {
	ctx := context.Background()
	userSessionKey := UserSessionKeyPrefix + userID.String()

	sessionToken, err := database.RedisClient.Get(ctx, userSessionKey).Result()
	if err == nil && sessionToken != "" {
		sessionKey := SessionKeyPrefix + sessionToken
		database.RedisClient.Del(ctx, sessionKey)
	}

	return database.RedisClient.Del(ctx, userSessionKey).Err()
}
