package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bekarys04/Social_Network/internal/apperrors"
	"github.com/bekarys04/Social_Network/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError maps the error kind to a status code. Internal failures are
// logged in full but reported generically.
func writeError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.WithError(err).Error("Internal error")
		message = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": message})
}
