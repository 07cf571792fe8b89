package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/property/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps the domain error taxonomy onto HTTP statuses. Every
// failure gets a distinct status; success envelopes never carry errors.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Unauthorized"})
	case errors.Is(err, domain.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Title, description, and price are required"})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid property data"})
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Not found"})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
	}
}
