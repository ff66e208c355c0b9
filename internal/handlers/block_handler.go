package handlers

import (
	"net/http"

	"github.com/bekarys04/Social_Network/internal/services"
	"github.com/bekarys04/Social_Network/pkg/logger"
	"github.com/bekarys04/Social_Network/pkg/middleware"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlockHandler manages HTTP endpoints for blocking users.
type BlockHandler struct {
	Service *services.BlockService
}

func NewBlockHandler(service *services.BlockService) *BlockHandler {
	return &BlockHandler{Service: service}
}

// BlockHandler blocks the user in the path.
func (h *BlockHandler) BlockUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	blockedID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	blockerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Block(r.Context(), blockerID, blockedID); err != nil {
		logger.Log.Warnf("Failed to block user: %v", err)
		writeError(w, err)
		return
	}

	logger.Log.Infof("User %s blocked %s", claims.UserID, blockedID.Hex())
	writeJSON(w, http.StatusOK, map[string]string{"message": "User blocked"})
}

// UnblockUserHandler removes a block.
func (h *BlockHandler) UnblockUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	blockedID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	blockerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.Unblock(r.Context(), blockerID, blockedID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User unblocked"})
}

// ListBlockedHandler returns the caller's block list.
func (h *BlockHandler) ListBlockedHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	blockerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	blocks, err := h.Service.ListBlocked(r.Context(), blockerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}
