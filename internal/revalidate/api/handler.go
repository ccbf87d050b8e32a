package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
	"gallery-shop/internal/revalidate"
)

type Handler struct {
	Service *revalidate.Service
	Logger  *logger.Logger
}

func NewHandler(service *revalidate.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) Revalidate(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Authorize(r); err != nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload models.SanityWebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Revalidate: failed to decode payload: %v", err))
		writeError(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	paths, err := h.Service.Revalidate(r.Context(), payload)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Revalidate: %v", err))
		writeError(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	writeJSON(w, http.StatusOK, models.RevalidateResponse{
		Message:      "Revalidation triggered successfully",
		DocumentType: payload.Type,
		Paths:        paths,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
