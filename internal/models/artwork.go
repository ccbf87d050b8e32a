package models

import "time"

type ArtworkStatus string

const (
	ArtworkAvailable   ArtworkStatus = "Available"
	ArtworkUnavailable ArtworkStatus = "Unavailable"
	ArtworkSold        ArtworkStatus = "Sold"
	ArtworkHidden      ArtworkStatus = "Hidden"
)

// Artwork mirrors the artwork document in the content store. Slug is
// projected from slug.current by the queries, so it arrives as a plain string.
type Artwork struct {
	ID         string         `json:"_id"`
	Title      string         `json:"title"`
	Slug       string         `json:"slug"`
	Images     []ArtworkImage `json:"images,omitempty"`
	Medium     string         `json:"medium,omitempty"`
	Dimensions string         `json:"dimensions,omitempty"`
	Year       int            `json:"year,omitempty"`
	Price      float64        `json:"price"`
	Status     ArtworkStatus  `json:"status"`
	Featured   bool           `json:"featured,omitempty"`
	SoldAt     *time.Time     `json:"soldAt,omitempty"`
}

type ArtworkImage struct {
	Type  string `json:"_type,omitempty"`
	Asset struct {
		Ref string `json:"_ref"`
	} `json:"asset"`
}

// Purchasable reports whether a checkout session may be created for the
// artwork. Only Available artworks can be bought; the Sold transition is
// one-way and happens through payment confirmation.
func (a *Artwork) Purchasable() bool {
	return a.Status == ArtworkAvailable
}
