package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v83"

	"github.com/oksasatya/go-ecommerce-backend/internal/domain/entity"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrCheckoutFailed = errors.New("checkout session failed")
	ErrInvalidPrice   = errors.New("invalid price")
)

// MaxUnitAmount is Stripe's ceiling for unit_amount, in minor units.
const MaxUnitAmount = 99999999

// SessionCreator is the part of the Stripe client the checkout flow needs.
type SessionCreator interface {
	Create(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)
}

type CheckoutService struct {
	Sessions     SessionCreator
	Currency     string
	ShippingRate string
	SuccessURL   string
	CancelURL    string
	Logger       *logrus.Logger
}

type CheckoutOptions struct {
	Currency     string
	ShippingRate string
	SuccessURL   string
	CancelURL    string
}

func NewCheckoutService(sessions SessionCreator, opts CheckoutOptions, logger *logrus.Logger) *CheckoutService {
	return &CheckoutService{
		Sessions:     sessions,
		Currency:     opts.Currency,
		ShippingRate: opts.ShippingRate,
		SuccessURL:   opts.SuccessURL,
		CancelURL:    opts.CancelURL,
		Logger:       logger,
	}
}

// UnitAmount converts a major-unit price to whole minor units, rounding half
// away from zero. Results outside 0..MaxUnitAmount are ErrInvalidPrice.
func UnitAmount(price float64) (int64, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidPrice
	}
	d := decimal.NewFromFloat(price).Shift(2).Round(0)
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(MaxUnitAmount)) {
		return 0, ErrInvalidPrice
	}
	return d.IntPart(), nil
}

// CreateSession opens a hosted Stripe checkout for the cart and returns its id.
// Gateway errors are not retried.
func (s *CheckoutService) CreateSession(ctx context.Context, items []entity.LineItem) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	params, err := s.params(items)
	if err != nil {
		return "", err
	}

	sess, err := s.Sessions.Create(ctx, params)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("items", len(items)).Error("stripe checkout session failed")
		}
		return "", fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}
	checkoutSessionsTotal.Add(1)
	return sess.ID, nil
}

func (s *CheckoutService) params(items []entity.LineItem) (*stripe.CheckoutSessionCreateParams, error) {
	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(items))
	for i, it := range items {
		amount, err := UnitAmount(it.Price)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency: stripe.String(s.Currency),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name: stripe.String(it.Name),
				},
				UnitAmount: stripe.Int64(amount),
			},
			AdjustableQuantity: &stripe.CheckoutSessionCreateLineItemAdjustableQuantityParams{
				Enabled: stripe.Bool(true),
				Minimum: stripe.Int64(1),
			},
			Quantity: stripe.Int64(it.Qty),
		})
	}

	return &stripe.CheckoutSessionCreateParams{
		SubmitType:               stripe.String(string(stripe.CheckoutSessionSubmitTypePay)),
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionAuto)),
		ShippingOptions: []*stripe.CheckoutSessionCreateShippingOptionParams{
			{ShippingRate: stripe.String(s.ShippingRate)},
		},
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.SuccessURL),
		CancelURL:  stripe.String(s.CancelURL),
	}, nil
}
