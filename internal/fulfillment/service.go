package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

const (
	TaskMarkSold       = "mark_sold"
	TaskNotifyCustomer = "notify_customer"
	TaskNotifyArtist   = "notify_artist"
)

// TaskResult reports the outcome of a single fulfillment task, so callers
// and tests can observe partial failure instead of digging through logs.
type TaskResult struct {
	Task string
	Err  error
}

func (r TaskResult) Failed() bool {
	return r.Err != nil
}

type ContentStore interface {
	ArtworkBySlug(ctx context.Context, slug string) (*models.Artwork, error)
	MarkSold(ctx context.Context, docID string, at time.Time) error
}

type Mailer interface {
	Configured() bool
	SendPurchaseConfirmation(sale models.Sale) error
	SendSaleNotification(to string, sale models.Sale) error
}

type EventPublisher interface {
	Publish(topic string, key string, value []byte) error
}

type soldEvent struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	SessionID string    `json:"session_id"`
	SoldAt    time.Time `json:"sold_at"`
}

// Service fans out the three fulfillment tasks for a confirmed sale. Tasks
// run concurrently, never cancel each other and are never retried; the buyer
// has already paid, so failures surface in logs and task results only.
type Service struct {
	content     ContentStore
	mailer      Mailer
	events      EventPublisher // nil when event streaming is disabled
	artistEmail string
	soldTopic   string
	log         *logger.Logger
	now         func() time.Time
}

func NewService(content ContentStore, mailer Mailer, events EventPublisher, artistEmail, soldTopic string, log *logger.Logger) *Service {
	return &Service{
		content:     content,
		mailer:      mailer,
		events:      events,
		artistEmail: artistEmail,
		soldTopic:   soldTopic,
		log:         log,
		now:         time.Now,
	}
}

// Dispatch runs all three tasks and waits for every one to settle.
func (s *Service) Dispatch(ctx context.Context, sale models.Sale) []TaskResult {
	tasks := []struct {
		name string
		run  func(context.Context, models.Sale) error
	}{
		{TaskMarkSold, s.markSold},
		{TaskNotifyCustomer, s.notifyCustomer},
		{TaskNotifyArtist, s.notifyArtist},
	}

	results := make([]TaskResult, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, name string, run func(context.Context, models.Sale) error) {
			defer wg.Done()
			results[i] = TaskResult{Task: name, Err: run(ctx, sale)}
		}(i, task.name, task.run)
	}
	wg.Wait()

	for _, res := range results {
		if res.Failed() {
			s.log.Error("FULFILL", fmt.Sprintf("Task %s failed for session %s: %v", res.Task, sale.SessionID, res.Err))
		}
	}
	return results
}

func (s *Service) markSold(ctx context.Context, sale models.Sale) error {
	if sale.ArtworkSlug == "" {
		s.log.Warn("FULFILL", fmt.Sprintf("Session %s has no artwork_slug, skipping status patch", sale.SessionID))
		return nil
	}

	art, err := s.content.ArtworkBySlug(ctx, sale.ArtworkSlug)
	if err != nil {
		return fmt.Errorf("failed to look up artwork %s: %w", sale.ArtworkSlug, err)
	}
	if art == nil {
		s.log.Warn("FULFILL", fmt.Sprintf("No artwork found for slug %s, skipping status patch", sale.ArtworkSlug))
		return nil
	}

	soldAt := s.now()
	if err := s.content.MarkSold(ctx, art.ID, soldAt); err != nil {
		return fmt.Errorf("failed to mark artwork %s as sold: %w", sale.ArtworkSlug, err)
	}
	s.log.Info("FULFILL", fmt.Sprintf("Artwork %s marked as sold", sale.ArtworkSlug))

	if s.events != nil {
		value, err := json.Marshal(soldEvent{
			Slug:      sale.ArtworkSlug,
			Title:     sale.ArtworkTitle,
			SessionID: sale.SessionID,
			SoldAt:    soldAt,
		})
		if err == nil {
			err = s.events.Publish(s.soldTopic, sale.ArtworkSlug, value)
		}
		if err != nil {
			s.log.Error("KAFKA", fmt.Sprintf("Failed to publish sold event for %s: %v", sale.ArtworkSlug, err))
		}
	}

	return nil
}

func (s *Service) notifyCustomer(_ context.Context, sale models.Sale) error {
	if s.mailer == nil || !s.mailer.Configured() {
		s.log.Warn("FULFILL", "Mail transport not configured, skipping customer notification")
		return nil
	}
	if sale.CustomerEmail == "" {
		s.log.Warn("FULFILL", fmt.Sprintf("Session %s has no customer email, skipping confirmation", sale.SessionID))
		return nil
	}

	if err := s.mailer.SendPurchaseConfirmation(sale); err != nil {
		return fmt.Errorf("failed to send purchase confirmation: %w", err)
	}
	s.log.Info("FULFILL", fmt.Sprintf("Purchase confirmation sent to %s", sale.CustomerEmail))
	return nil
}

func (s *Service) notifyArtist(_ context.Context, sale models.Sale) error {
	if s.mailer == nil || !s.mailer.Configured() {
		s.log.Warn("FULFILL", "Mail transport not configured, skipping artist notification")
		return nil
	}
	if s.artistEmail == "" {
		s.log.Warn("FULFILL", "Artist email not configured, skipping sale notification")
		return nil
	}

	if err := s.mailer.SendSaleNotification(s.artistEmail, sale); err != nil {
		return fmt.Errorf("failed to send sale notification: %w", err)
	}
	s.log.Info("FULFILL", fmt.Sprintf("Sale notification sent to %s", s.artistEmail))
	return nil
}
