package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tradewinds-bvi/tradewinds-backend/internal/config"
	"github.com/tradewinds-bvi/tradewinds-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

// InitCloudinaryService wires the avatar upload backend. Optional: uploads
// return 503 until configured.
func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	VesselName  *string `json:"vesselName"`
	HomePort    *string `json:"homePort"`
	Bio         *string `json:"bio"`
	ShowOnMap   *bool   `json:"showOnMap"`
}

// GetProfile returns the caller's profile.
func GetProfile(w http.ResponseWriter, r *http.Request) {
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

// UpdateProfile applies a partial profile update.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := services.UpdateProfile(userID, services.ProfileUpdate{
		DisplayName: req.DisplayName,
		VesselName:  req.VesselName,
		HomePort:    req.HomePort,
		Bio:         req.Bio,
		ShowOnMap:   req.ShowOnMap,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"profile": profile})
}

// UploadAvatar stores a new avatar image and updates the profile.
func UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	if cloudinaryService == nil {
		respondError(w, http.StatusServiceUnavailable, "Avatar uploads are not available")
		return
	}

	// Max 10MB
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	url, err := cloudinaryService.UploadFileFromHeader(r.Context(), fileHeader, "tradewinds/avatars")
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := services.SetAvatarURL(userID, url); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"avatarUrl": url})
}

// GoOffline clears the caller's coordinates so they drop off the map.
func GoOffline(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(r)
	if !ok {
		respondUnauthenticated(w)
		return
	}

	if err := services.GoOffline(userID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
