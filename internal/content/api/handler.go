package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gallery-shop/internal/content"
	"gallery-shop/internal/logger"
)

type Handler struct {
	Service *content.Service
	Logger  *logger.Logger
}

func NewHandler(service *content.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Service.Home(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Home: %v", err))
		writeError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}
	writeRaw(w, payload)
}

func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Service.Gallery(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Gallery: %v", err))
		writeError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}
	writeRaw(w, payload)
}

func (h *Handler) Artwork(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	payload, err := h.Service.Artwork(r.Context(), slug)
	if err != nil {
		if errors.Is(err, content.ErrArtworkNotFound) {
			writeError(w, http.StatusNotFound, "Artwork not found")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("Artwork %s: %v", slug, err))
		writeError(w, http.StatusInternalServerError, "Failed to load content")
		return
	}
	writeRaw(w, payload)
}

func writeRaw(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
