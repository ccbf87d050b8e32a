package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"gallery-shop/internal/logger"
)

// PaymentEvent is one received payment-provider event. Deliveries are
// at-least-once, so the id is the primary key and duplicate inserts are
// silently ignored.
type PaymentEvent struct {
	bun.BaseModel `bun:"table:payment_events"`

	ID            string    `bun:"id,pk"`
	Type          string    `bun:"type,notnull"`
	ArtworkSlug   string    `bun:"artwork_slug"`
	CustomerEmail string    `bun:"customer_email"`
	AmountTotal   int64     `bun:"amount_total"`
	ReceivedAt    time.Time `bun:"received_at,notnull"`
}

// Store is an append-only audit trail of webhook deliveries. It is
// observability only; fulfillment never consults it.
type Store struct {
	Bun *bun.DB
	Log *logger.Logger
}

func NewStore(ctx context.Context, db *bun.DB, log *logger.Logger) (*Store, error) {
	store := &Store{Bun: db, Log: log}

	_, err := db.NewCreateTable().
		Model((*PaymentEvent)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment_events table: %w", err)
	}

	log.Info("AUDIT", "Payment event audit store initialized")
	return store, nil
}

func (s *Store) Record(ctx context.Context, ev *PaymentEvent) error {
	_, err := s.Bun.NewInsert().
		Model(ev).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record payment event %s: %w", ev.ID, err)
	}
	return nil
}

func (s *Store) ByID(ctx context.Context, id string) (*PaymentEvent, error) {
	ev := new(PaymentEvent)
	err := s.Bun.NewSelect().
		Model(ev).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Recent returns the latest events, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]PaymentEvent, error) {
	var events []PaymentEvent
	err := s.Bun.NewSelect().
		Model(&events).
		Order("received_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}
