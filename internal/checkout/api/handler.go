package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gallery-shop/internal/checkout"
	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

type Handler struct {
	Service *checkout.Service
	Logger  *logger.Logger
}

func NewHandler(service *checkout.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateSession: failed to decode request body: %v", err))
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.Logger.Info("API", fmt.Sprintf("CreateSession: checkout requested for slug=%s", req.Slug))

	url, err := h.Service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, checkout.ErrArtworkNotFound):
			writeError(w, http.StatusNotFound, "Artwork not found")
		case errors.Is(err, checkout.ErrArtworkUnavailable):
			writeError(w, http.StatusConflict, "Artwork is no longer available")
		default:
			h.Logger.Error("API", fmt.Sprintf("CreateSession: %v", err))
			writeError(w, http.StatusInternalServerError, "Failed to create checkout session")
		}
		return
	}

	writeJSON(w, http.StatusOK, models.CheckoutResponse{URL: url})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
