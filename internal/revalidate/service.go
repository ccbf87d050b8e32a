package revalidate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

var ErrUnauthorized = errors.New("unauthorized")

const (
	PathHome    = "/"
	PathGallery = "/artwork"

	artworkPathPrefix = "/art/"
)

type CacheInvalidator interface {
	Invalidate(ctx context.Context, paths ...string) (int64, error)
}

// Service maps content-store change notifications to the cached paths that
// must be purged. It is a dispatch table, not a state machine.
type Service struct {
	secret string
	cache  CacheInvalidator
	log    *logger.Logger
}

func NewService(secret string, cache CacheInvalidator, log *logger.Logger) *Service {
	return &Service{secret: secret, cache: cache, log: log}
}

// Authorize checks the shared secret against either the Authorization header
// (with or without a Bearer prefix) or the vendor signature header. When no
// secret is configured the endpoint is open.
func (s *Service) Authorize(r *http.Request) error {
	if s.secret == "" {
		return nil
	}

	provided := ""
	if auth := r.Header.Get("Authorization"); auth != "" {
		provided = strings.TrimPrefix(auth, "Bearer ")
	} else if sig := r.Header.Get("Sanity-Webhook-Signature"); sig != "" {
		provided = sig
	}

	if provided == "" || provided != s.secret {
		s.log.Warn("REVALIDATE", "Unauthorized webhook request, secrets don't match")
		return ErrUnauthorized
	}
	return nil
}

// PathsFor returns the cached paths affected by a document change.
func PathsFor(payload models.SanityWebhookPayload) []string {
	switch payload.Type {
	case "artwork":
		paths := []string{PathHome, PathGallery}
		if payload.Slug != nil && payload.Slug.Current != "" {
			paths = append(paths, artworkPathPrefix+payload.Slug.Current)
		}
		return paths
	case "homepage":
		return []string{PathHome}
	default:
		return []string{PathHome, PathGallery}
	}
}

func (s *Service) Revalidate(ctx context.Context, payload models.SanityWebhookPayload) ([]string, error) {
	paths := PathsFor(payload)
	if _, err := s.cache.Invalidate(ctx, paths...); err != nil {
		return nil, fmt.Errorf("failed to invalidate cached paths: %w", err)
	}

	s.log.Info("REVALIDATE", fmt.Sprintf("Document %s (%s) invalidated paths %v", payload.ID, payload.Type, paths))
	return paths, nil
}
