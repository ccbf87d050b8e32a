package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"gallery-shop/internal/config"
	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

var ErrNoWriteToken = errors.New("sanity write token is not configured")

// GROQ projections shared by the read paths. Slug is flattened to a string so
// the models stay free of nested slug objects.
const (
	galleryQuery = `*[_type=="artwork"] | order(featured desc, year desc, _createdAt desc)[0...60]{_id,title,"slug":slug.current,images,medium,dimensions,year,price,status,featured}`

	featuredQuery = `*[_type=="artwork" && featured == true && status != "Hidden"] | order(year desc)[0...6]{_id,title,"slug":slug.current,images,medium,dimensions,year,price,status,featured}`

	artworkBySlugQuery = `*[_type=="artwork" && slug.current == $slug][0]{_id,title,"slug":slug.current,images,medium,dimensions,year,price,status,featured,soldAt}`
)

// Client talks to the content store over its HTTP query and mutate API.
// Reads work without a token on public datasets; MarkSold requires the
// write token.
type Client struct {
	http    *http.Client
	baseURL string
	dataset string
	token   string
	log     *logger.Logger
}

func NewClient(cfg config.SanityConfig, httpClient *http.Client, log *logger.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io/v%s", cfg.ProjectID, cfg.APIVersion)
	}

	return &Client{
		http:    httpClient,
		baseURL: base,
		dataset: cfg.Dataset,
		token:   cfg.Token,
		log:     log,
	}
}

// ArtworkBySlug returns the artwork document for a slug, or nil when no
// document matches.
func (c *Client) ArtworkBySlug(ctx context.Context, slug string) (*models.Artwork, error) {
	var result struct {
		Result *models.Artwork `json:"result"`
	}
	if err := c.query(ctx, artworkBySlugQuery, map[string]any{"slug": slug}, &result); err != nil {
		return nil, err
	}
	return result.Result, nil
}

// Gallery returns the listing-page artworks, featured first.
func (c *Client) Gallery(ctx context.Context) ([]models.Artwork, error) {
	var result struct {
		Result []models.Artwork `json:"result"`
	}
	if err := c.query(ctx, galleryQuery, nil, &result); err != nil {
		return nil, err
	}
	return result.Result, nil
}

// FeaturedArtworks returns the artworks shown on the home page.
func (c *Client) FeaturedArtworks(ctx context.Context) ([]models.Artwork, error) {
	var result struct {
		Result []models.Artwork `json:"result"`
	}
	if err := c.query(ctx, featuredQuery, nil, &result); err != nil {
		return nil, err
	}
	return result.Result, nil
}

// MarkSold patches an artwork document to status Sold and stamps soldAt.
// The patch is terminal-state idempotent: re-applying it leaves the document
// Sold with a refreshed timestamp.
func (c *Client) MarkSold(ctx context.Context, docID string, at time.Time) error {
	if c.token == "" {
		return ErrNoWriteToken
	}

	body := map[string]any{
		"mutations": []map[string]any{
			{
				"patch": map[string]any{
					"id": docID,
					"set": map[string]any{
						"status": string(models.ArtworkSold),
						"soldAt": at.UTC().Format(time.RFC3339),
					},
				},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal mutation: %w", err)
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s", c.baseURL, c.dataset)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create mutate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sanity mutate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sanity mutate returned status %d: %s", resp.StatusCode, string(snippet))
	}

	c.log.Info("SANITY", fmt.Sprintf("Marked document %s as sold", docID))
	return nil
}

func (c *Client) query(ctx context.Context, groq string, params map[string]any, out any) error {
	values := url.Values{}
	values.Set("query", groq)
	for name, param := range params {
		encoded, err := json.Marshal(param)
		if err != nil {
			return fmt.Errorf("failed to encode query param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create query request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sanity query request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sanity query returned status %d: %s", resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode sanity response: %w", err)
	}
	return nil
}
