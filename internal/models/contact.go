package models

import "time"

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

type ContactMessage struct {
	ID         string
	Name       string
	Email      string
	Subject    string
	Message    string
	ReceivedAt time.Time
}
