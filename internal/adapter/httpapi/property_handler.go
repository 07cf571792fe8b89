package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/estatehub/marketplace/internal/adapter/httpapi/middleware"
	"github.com/estatehub/marketplace/internal/property/domain"
	"github.com/estatehub/marketplace/internal/property/usecase"
)

// maxUploadSize bounds a single media upload.
const maxUploadSize = 32 << 20

type PropertyHandler struct {
	listings *usecase.ListingUsecase
	media    *usecase.MediaUsecase
	logger   *zap.Logger
}

func NewPropertyHandler(listings *usecase.ListingUsecase, media *usecase.MediaUsecase, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{listings: listings, media: media, logger: logger}
}

// Search handles GET /properties. Unrecognized or unparsable filter
// values are dropped, not rejected. A backend failure keeps the
// empty-list body but reports the 500.
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := domain.FilterFromValues(r.URL.Query())
	properties, err := h.listings.Search(r.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			writeJSON(w, http.StatusInternalServerError, properties)
			return
		}
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

// GetByID handles GET /properties/{id}.
func (h *PropertyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	property, err := h.listings.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// MyListings handles GET /properties/mine.
func (h *PropertyHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	properties, err := h.listings.MyListings(r.Context(), actor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

type createPropertyResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Create handles POST /properties.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in usecase.CreatePropertyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, h.logger, domain.ErrInvalidArgument)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	property, err := h.listings.Create(r.Context(), actor, in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, createPropertyResponse{
		Message: "Property created successfully",
		ID:      property.ID,
	})
}

// Update handles PUT /properties/{id}.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in usecase.UpdatePropertyInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, h.logger, domain.ErrInvalidArgument)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	property, err := h.listings.Update(r.Context(), actor, chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// Delete handles DELETE /properties/{id}.
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	if err := h.listings.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Property deleted"})
}

type uploadResponse struct {
	URL string `json:"url"`
}

// AttachPhoto handles POST /properties/{id}/images with a multipart
// "file" field.
func (h *PropertyHandler) AttachPhoto(w http.ResponseWriter, r *http.Request) {
	h.attachMedia(w, r, h.media.AttachPhoto)
}

// AttachVideo handles POST /properties/{id}/videos, same shape as the
// image upload.
func (h *PropertyHandler) AttachVideo(w http.ResponseWriter, r *http.Request) {
	h.attachMedia(w, r, h.media.AttachVideo)
}

func (h *PropertyHandler) attachMedia(w http.ResponseWriter, r *http.Request, attach func(context.Context, domain.Actor, string, string, []byte) (string, error)) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, h.logger, domain.ErrInvalidArgument)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, h.logger, domain.ErrInvalidArgument)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	url, err := attach(r.Context(), actor, chi.URLParam(r, "id"), header.Filename, data)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{URL: url})
}
