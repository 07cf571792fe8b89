package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/adapter/httpapi/middleware"
	"github.com/estatehub/marketplace/internal/property/domain"
	"github.com/estatehub/marketplace/internal/property/usecase"
)

type FavoriteHandler struct {
	favorites *usecase.FavoriteUsecase
	logger    *zap.Logger
}

func NewFavoriteHandler(favorites *usecase.FavoriteUsecase, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

type toggleRequest struct {
	PropertyID string `json:"propertyId"`
}

type toggleResponse struct {
	State domain.ToggleState `json:"state"`
}

// Toggle handles POST /favorites. Each call flips the pair's state;
// there is no way to request a particular target state.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, domain.ErrInvalidArgument)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	state, err := h.favorites.Toggle(r.Context(), actor, req.PropertyID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{State: state})
}

// List handles GET /favorites, returning the caller's favorited
// property ids, newest first.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	favorites, err := h.favorites.List(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.PropertyID)
	}
	writeJSON(w, http.StatusOK, ids)
}
