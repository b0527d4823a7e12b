package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
	"github.com/tradewinds-bvi/tradewinds-backend/pkg/utils"
)

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup registers a new account and opens a session.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	normalized := utils.NormalizeUsername(req.Username)

	existing, err := services.GetUserIDByUsername(normalized)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if existing != uuid.Nil {
		respondError(w, http.StatusBadRequest, "Username is already taken")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	profile, err := services.CreateProfile(normalized, hash)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := services.CreateSession(profile.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token":   token,
		"profile": profile,
	})
}

// Signin verifies credentials and opens a fresh session.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	userID, hash, err := services.GetPasswordHashByUsername(req.Username)
	if err != nil {
		if err == services.ErrNotFound {
			respondError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondServiceError(w, err)
		return
	}

	ok, err := utils.VerifyPassword(req.Password, hash)
	if err != nil || !ok {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	profile, err := services.GetProfileByID(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"profile": profile,
	})
}

// Signout invalidates the caller's session.
func Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		respondUnauthenticated(w)
		return
	}
	if err := services.InvalidateSession(token); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetMe returns the caller's own profile.
func GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	profile, err := services.GetProfileByID(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}
