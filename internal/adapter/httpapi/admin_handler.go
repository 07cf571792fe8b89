package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/adapter/httpapi/middleware"
	"github.com/estatehub/marketplace/internal/property/domain"
	"github.com/estatehub/marketplace/internal/property/usecase"
)

type AdminHandler struct {
	listings *usecase.ListingUsecase
	stats    *usecase.StatsUsecase
	logger   *zap.Logger
}

func NewAdminHandler(listings *usecase.ListingUsecase, stats *usecase.StatsUsecase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{listings: listings, stats: stats, logger: logger}
}

// ListProperties handles GET /admin/properties: every property,
// inactive ones included.
func (h *AdminHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	properties, err := h.listings.ListAll(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

type setActiveRequest struct {
	PropertyID string `json:"propertyId"`
	IsActive   bool   `json:"isActive"`
}

// SetActive handles PUT /admin/properties, flipping the visibility flag.
func (h *AdminHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, domain.ErrInvalidArgument)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if err := h.listings.SetActive(r.Context(), actor, req.PropertyID, req.IsActive); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Property updated successfully"})
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	stats, err := h.stats.Stats(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
