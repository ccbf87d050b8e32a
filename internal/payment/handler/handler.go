package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gallery-shop/internal/logger"
	"gallery-shop/internal/payment"
)

type WebhookHandler struct {
	Service *payment.WebhookService
	Logger  *logger.Logger
}

func NewWebhookHandler(service *payment.WebhookService, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{Service: service, Logger: log}
}

func (h *WebhookHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Handle(r); err != nil {
		var webhookErr *payment.Error
		if errors.As(err, &webhookErr) {
			writeError(w, webhookErr.StatusCode, webhookErr.PublicError)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("HandleStripeWebhook: %v", err))
		writeError(w, http.StatusInternalServerError, "Webhook handler failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
