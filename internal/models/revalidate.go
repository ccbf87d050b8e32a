package models

// SanityWebhookPayload is the change notification the content store posts
// when a document is created, updated or deleted.
type SanityWebhookPayload struct {
	Type string      `json:"_type"`
	ID   string      `json:"_id"`
	Rev  string      `json:"_rev,omitempty"`
	Slug *SanitySlug `json:"slug,omitempty"`
}

type SanitySlug struct {
	Current string `json:"current"`
}

type RevalidateResponse struct {
	Message      string   `json:"message"`
	DocumentType string   `json:"documentType"`
	Paths        []string `json:"paths"`
}
