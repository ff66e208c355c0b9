package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/internal/config"
	"github.com/bekarys04/Social_Network/internal/services"
	"github.com/bekarys04/Social_Network/pkg/jwt"
	"github.com/bekarys04/Social_Network/pkg/logger"
	"github.com/bekarys04/Social_Network/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	Service *services.UserService
	Privacy *services.PrivacyService
	Config  *config.Config
}

func NewUserHandler(service *services.UserService, privacy *services.PrivacyService, cfg *config.Config) *UserHandler {
	return &UserHandler{Service: service, Privacy: privacy, Config: cfg}
}

// RegisterUserHandler creates a new account.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.RegisterUser(r.Context(), body.Username, body.Email, body.Password)
	if err != nil {
		logger.Log.Warnf("Failed to register user: %v", err)
		writeError(w, err)
		return
	}

	logger.Log.WithField("user_id", user.ID.Hex()).Info("User registered")
	writeJSON(w, http.StatusCreated, user.Public())
}

// LoginUserHandler verifies credentials and issues a JWT.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.Authenticate(r.Context(), body.Email, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	ttl := time.Duration(h.Config.TokenTTLHours) * time.Hour
	token, err := jwt.GenerateToken(user.ID.Hex(), h.Config.JWTSecret, ttl)
	if err != nil {
		logger.Log.Errorf("Failed to generate token: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}

// GetUserHandler returns the public profile of the user in the path. The
// owner's profile privacy decides whether the viewer gets it.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	viewerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	allowed, err := h.Privacy.CanView(r.Context(), viewerID, ownerID, services.ContentProfile)
	if err != nil {
		writeError(w, err)
		return
	}
	if !allowed {
		writeError(w, apperrors.ErrNotFound)
		return
	}

	user, err := h.Service.GetUser(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}
