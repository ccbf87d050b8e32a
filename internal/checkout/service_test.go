package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"

	"gallery-shop/internal/checkout"
	"gallery-shop/internal/logger"
	"gallery-shop/internal/models"
)

type MockContentReader struct {
	mock.Mock
}

func (m *MockContentReader) ArtworkBySlug(ctx context.Context, slug string) (*models.Artwork, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artwork), args.Error(1)
}

type MockPaymentSessions struct {
	mock.Mock
}

func (m *MockPaymentSessions) CreateSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

func newTestService(content *MockContentReader, sessions *MockPaymentSessions) *checkout.Service {
	return checkout.NewService(content, sessions, checkout.Options{
		BaseURL:           "https://example.com",
		ArtistName:        "Vicki Danielson",
		ShippingCountries: []string{"US", "CA"},
	}, logger.New("test"))
}

func TestCreate_MissingFields(t *testing.T) {
	content := new(MockContentReader)
	sessions := new(MockPaymentSessions)
	svc := newTestService(content, sessions)

	cases := []models.CheckoutRequest{
		{Price: 100, Slug: "misty-morning"},
		{Title: "Misty Morning", Slug: "misty-morning"},
		{Title: "Misty Morning", Price: 100},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, checkout.ErrMissingFields)
	}

	content.AssertNotCalled(t, "ArtworkBySlug")
	sessions.AssertNotCalled(t, "CreateSession")
}

func TestCreate_ArtworkNotFound(t *testing.T) {
	content := new(MockContentReader)
	sessions := new(MockPaymentSessions)
	svc := newTestService(content, sessions)

	content.On("ArtworkBySlug", "vanished").Return(nil, nil)

	_, err := svc.Create(context.Background(), models.CheckoutRequest{
		Title: "Vanished", Price: 200, Slug: "vanished",
	})
	assert.ErrorIs(t, err, checkout.ErrArtworkNotFound)
	sessions.AssertNotCalled(t, "CreateSession")
}

func TestCreate_ArtworkUnavailable(t *testing.T) {
	content := new(MockContentReader)
	sessions := new(MockPaymentSessions)
	svc := newTestService(content, sessions)

	for _, status := range []models.ArtworkStatus{models.ArtworkSold, models.ArtworkUnavailable, models.ArtworkHidden} {
		content := new(MockContentReader)
		content.On("ArtworkBySlug", "gone").Return(&models.Artwork{
			ID: "doc-1", Title: "Gone", Slug: "gone", Status: status,
		}, nil)
		svc = newTestService(content, sessions)

		_, err := svc.Create(context.Background(), models.CheckoutRequest{
			Title: "Gone", Price: 300, Slug: "gone",
		})
		assert.ErrorIs(t, err, checkout.ErrArtworkUnavailable)
	}
	sessions.AssertNotCalled(t, "CreateSession")
}

func TestCreate_Success(t *testing.T) {
	content := new(MockContentReader)
	sessions := new(MockPaymentSessions)
	svc := newTestService(content, sessions)

	content.On("ArtworkBySlug", "misty-morning").Return(&models.Artwork{
		ID: "doc-1", Title: "Misty Morning", Slug: "misty-morning",
		Price: 250, Status: models.ArtworkAvailable,
	}, nil)

	var captured *stripe.CheckoutSessionParams
	sessions.On("CreateSession", mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(0).(*stripe.CheckoutSessionParams)
	}).Return(&stripe.CheckoutSession{
		ID:  "cs_test_123",
		URL: "https://checkout.stripe.com/pay/cs_test_123",
	}, nil)

	url, err := svc.Create(context.Background(), models.CheckoutRequest{
		Title: "Misty Morning", Price: 250, Slug: "misty-morning",
	})
	assert.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_123", url)

	assert.NotNil(t, captured)
	assert.Len(t, captured.LineItems, 1)
	assert.Equal(t, int64(25000), *captured.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "usd", *captured.LineItems[0].PriceData.Currency)
	assert.Equal(t, "Misty Morning", *captured.LineItems[0].PriceData.ProductData.Name)
	assert.Equal(t, "misty-morning", captured.Metadata["artwork_slug"])
	assert.Equal(t, "Misty Morning", captured.Metadata["artwork_title"])
	assert.Equal(t, "https://example.com/purchase/success?session_id={CHECKOUT_SESSION_ID}", *captured.SuccessURL)
	assert.Equal(t, "https://example.com/art/misty-morning", *captured.CancelURL)
	assert.NotNil(t, captured.ShippingAddressCollection)
}

func TestCreate_ProviderError(t *testing.T) {
	content := new(MockContentReader)
	sessions := new(MockPaymentSessions)
	svc := newTestService(content, sessions)

	content.On("ArtworkBySlug", "misty-morning").Return(&models.Artwork{
		ID: "doc-1", Title: "Misty Morning", Slug: "misty-morning",
		Price: 250, Status: models.ArtworkAvailable,
	}, nil)
	sessions.On("CreateSession", mock.Anything).Return(nil, errors.New("stripe unavailable"))

	_, err := svc.Create(context.Background(), models.CheckoutRequest{
		Title: "Misty Morning", Price: 250, Slug: "misty-morning",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, checkout.ErrMissingFields)
	assert.NotErrorIs(t, err, checkout.ErrArtworkNotFound)
	assert.NotErrorIs(t, err, checkout.ErrArtworkUnavailable)
}

func TestUnitAmount(t *testing.T) {
	assert.Equal(t, int64(25000), checkout.UnitAmount(250))
	assert.Equal(t, int64(9999), checkout.UnitAmount(99.99))
	assert.Equal(t, int64(10), checkout.UnitAmount(0.1))
	// Fractional cents round to the nearest cent.
	assert.Equal(t, int64(10001), checkout.UnitAmount(100.005))
}
