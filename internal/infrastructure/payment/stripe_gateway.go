package payment

import (
	"context"

	"github.com/stripe/stripe-go/v83"
)

// CheckoutSessions creates Stripe hosted checkout sessions with a per-process
// client instead of the package-level stripe.Key.
type CheckoutSessions struct {
	client *stripe.Client
}

func NewCheckoutSessions(secretKey string, opts ...stripe.ClientOption) *CheckoutSessions {
	return &CheckoutSessions{client: stripe.NewClient(secretKey, opts...)}
}

func (g *CheckoutSessions) Create(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error) {
	return g.client.V1CheckoutSessions.Create(ctx, params)
}
