package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bekarys04/Social_Network/internal/models"
	"github.com/bekarys04/Social_Network/internal/services"
	"github.com/bekarys04/Social_Network/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrivacyHandler exposes the user's privacy settings.
type PrivacyHandler struct {
	Service *services.PrivacyService
}

func NewPrivacyHandler(service *services.PrivacyService) *PrivacyHandler {
	return &PrivacyHandler{Service: service}
}

// GetSettingsHandler returns the caller's settings, defaults included.
func (h *PrivacyHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	settings, err := h.Service.GetSettings(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettingsHandler replaces the caller's settings.
func (h *PrivacyHandler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	var body models.PrivacySettings
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateSettings(r.Context(), userID, &body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
