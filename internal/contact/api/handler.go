package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gallery-shop/internal/contact"
	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

type Handler struct {
	Service *contact.Service
	Logger  *logger.Logger
}

func NewHandler(service *contact.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Submit: failed to decode request body: %v", err))
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.Submit(req); err != nil {
		switch {
		case errors.Is(err, contact.ErrMissingFields):
			writeError(w, http.StatusBadRequest, "Name, email, and message are required")
		case errors.Is(err, contact.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "Please provide a valid email address")
		case errors.Is(err, contact.ErrMailUnavailable):
			writeError(w, http.StatusInternalServerError, "Email service temporarily unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to send message. Please try again later.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
