package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// StripeSessions adapts the Stripe SDK client to the PaymentSessions
// interface so the service can be tested with a substitute.
type StripeSessions struct {
	Client *client.API
}

func (s *StripeSessions) CreateSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx
	return s.Client.CheckoutSessions.New(params)
}
