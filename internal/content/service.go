package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

var ErrArtworkNotFound = errors.New("artwork not found")

type Reader interface {
	FeaturedArtworks(ctx context.Context) ([]models.Artwork, error)
	Gallery(ctx context.Context) ([]models.Artwork, error)
	ArtworkBySlug(ctx context.Context, slug string) (*models.Artwork, error)
}

type PageCache interface {
	Get(ctx context.Context, path string) ([]byte, bool, error)
	Set(ctx context.Context, path string, payload []byte) error
}

// Service serves read-through cached content pages. Cache keys mirror the
// site paths so the revalidation webhook can purge them by path.
type Service struct {
	content Reader
	cache   PageCache
	log     *logger.Logger
}

func NewService(content Reader, cache PageCache, log *logger.Logger) *Service {
	return &Service{content: content, cache: cache, log: log}
}

func (s *Service) Home(ctx context.Context) ([]byte, error) {
	return s.cached(ctx, "/", func(ctx context.Context) (any, error) {
		featured, err := s.content.FeaturedArtworks(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"featured": featured}, nil
	})
}

func (s *Service) Gallery(ctx context.Context) ([]byte, error) {
	return s.cached(ctx, "/artwork", func(ctx context.Context) (any, error) {
		artworks, err := s.content.Gallery(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"artworks": artworks}, nil
	})
}

func (s *Service) Artwork(ctx context.Context, slug string) ([]byte, error) {
	return s.cached(ctx, "/art/"+slug, func(ctx context.Context) (any, error) {
		artwork, err := s.content.ArtworkBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if artwork == nil {
			return nil, ErrArtworkNotFound
		}
		return artwork, nil
	})
}

// cached serves path from the cache when possible. Cache errors degrade to a
// direct content-store read, never to a request failure.
func (s *Service) cached(ctx context.Context, path string, fetch func(context.Context) (any, error)) ([]byte, error) {
	payload, ok, err := s.cache.Get(ctx, path)
	if err != nil {
		s.log.Warn("CACHE", fmt.Sprintf("Read for %s failed: %v", path, err))
	} else if ok {
		return payload, nil
	}

	doc, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	payload, err = json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content for %s: %w", path, err)
	}

	if err := s.cache.Set(ctx, path, payload); err != nil {
		s.log.Warn("CACHE", fmt.Sprintf("Write for %s failed: %v", path, err))
	}
	return payload, nil
}
