package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"

	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrArtworkNotFound    = errors.New("artwork not found")
	ErrArtworkUnavailable = errors.New("artwork is no longer available")
)

type ContentReader interface {
	ArtworkBySlug(ctx context.Context, slug string) (*models.Artwork, error)
}

type PaymentSessions interface {
	CreateSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type Options struct {
	BaseURL           string
	ArtistName        string
	ShippingCountries []string
}

// Service validates purchase requests against current artwork availability
// and creates hosted payment sessions. It is stateless; nothing here stops
// two concurrent sessions for the same artwork, the availability check and
// the session creation are not transactional against the content store.
type Service struct {
	content  ContentReader
	sessions PaymentSessions
	opts     Options
	log      *logger.Logger
}

func NewService(content ContentReader, sessions PaymentSessions, opts Options, log *logger.Logger) *Service {
	return &Service{content: content, sessions: sessions, opts: opts, log: log}
}

// Create returns the hosted checkout URL for an available artwork.
func (s *Service) Create(ctx context.Context, req models.CheckoutRequest) (string, error) {
	if req.Title == "" || req.Price == 0 || req.Slug == "" {
		return "", ErrMissingFields
	}

	art, err := s.content.ArtworkBySlug(ctx, req.Slug)
	if err != nil {
		return "", fmt.Errorf("failed to look up artwork %s: %w", req.Slug, err)
	}
	if art == nil {
		return "", ErrArtworkNotFound
	}
	if !art.Purchasable() {
		s.log.Warn("CHECKOUT", fmt.Sprintf("Rejected checkout for %s with status %s", req.Slug, art.Status))
		return "", ErrArtworkUnavailable
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.Title),
						Description: stripe.String(fmt.Sprintf("Original artwork by %s", s.opts.ArtistName)),
						Metadata:    map[string]string{"artwork_slug": req.Slug},
					},
					UnitAmount: stripe.Int64(UnitAmount(req.Price)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.opts.BaseURL + "/purchase/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.opts.BaseURL + "/art/" + req.Slug),
	}
	params.AddMetadata("artwork_slug", req.Slug)
	params.AddMetadata("artwork_title", req.Title)

	if len(s.opts.ShippingCountries) > 0 {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(s.opts.ShippingCountries),
		}
	}

	sess, err := s.sessions.CreateSession(ctx, params)
	if err != nil {
		s.log.Error("CHECKOUT", fmt.Sprintf("Failed to create checkout session for %s: %v", req.Slug, err))
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.log.Info("CHECKOUT", fmt.Sprintf("Created session %s for artwork %s", sess.ID, req.Slug))
	return sess.URL, nil
}

// UnitAmount converts a price in major currency units to minor units.
// Fractional-cent prices are rounded to the nearest cent, not rejected.
func UnitAmount(price float64) int64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
