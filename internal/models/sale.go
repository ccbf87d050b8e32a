package models

// Sale carries the facts recovered from a completed checkout session that
// fulfillment needs. ArtworkSlug may be empty when the session was created
// without metadata; notifications still go out in that case.
type Sale struct {
	SessionID     string
	ArtworkSlug   string
	ArtworkTitle  string
	CustomerEmail string
	AmountTotal   int64 // minor currency units
}
