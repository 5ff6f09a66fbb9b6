package payment

import (
	"errors"

	"github.com/stripe/stripe-go/v74"
	portalsession "github.com/stripe/stripe-go/v74/billingportal/session"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/customer"
	"github.com/stripe/stripe-go/v74/subscription"
)

var ErrNotConfigured = errors.New("stripe client is not configured")

// PackageSessionParams describes one single-payment hosted checkout: either a
// full package price or the first installment of a schedule.
type PackageSessionParams struct {
	CustomerID  string
	ProductName string
	Description string
	AmountCents int64
	SuccessURL  string
	CancelURL   string
	// SaveCard asks Stripe to retain the payment method for later
	// off-session installment charges.
	SaveCard bool
	Metadata map[string]string
}

type StripeClient struct {
	enabled bool
}

// NewStripeClient configures the global stripe key. With an empty secret the
// client stays disabled and every call returns ErrNotConfigured; callers are
// expected to check Enabled before doing any processor work.
func NewStripeClient(secretKey string) *StripeClient {
	if secretKey == "" {
		return &StripeClient{}
	}
	stripe.Key = secretKey
	return &StripeClient{enabled: true}
}

func (c *StripeClient) Enabled() bool {
	return c.enabled
}

func (c *StripeClient) CreateCustomer(email, name string) (string, error) {
	if !c.enabled {
		return "", ErrNotConfigured
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	if name != "" {
		params.Name = stripe.String(name)
	}

	cust, err := customer.New(params)
	if err != nil {
		return "", err
	}
	return cust.ID, nil
}

func (c *StripeClient) CreatePackageCheckoutSession(p PackageSessionParams) (*stripe.CheckoutSession, error) {
	if !c.enabled {
		return nil, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(p.CustomerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyEUR)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.ProductName),
						Description: stripe.String(p.Description),
					},
					UnitAmount: stripe.Int64(p.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
	}

	if p.SaveCard {
		params.PaymentIntentData = &stripe.CheckoutSessionPaymentIntentDataParams{
			SetupFutureUsage: stripe.String("off_session"),
		}
	}

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	return session.New(params)
}

func (c *StripeClient) CreateSubscriptionCheckoutSession(customerID, priceID, successURL, cancelURL string, metadata map[string]string) (*stripe.CheckoutSession, error) {
	if !c.enabled {
		return nil, ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}

	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	return session.New(params)
}

func (c *StripeClient) CreateBillingPortalSession(customerID, returnURL string) (string, error) {
	if !c.enabled {
		return "", ErrNotConfigured
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}

	s, err := portalsession.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}

func (c *StripeClient) GetSubscription(id string) (*stripe.Subscription, error) {
	if !c.enabled {
		return nil, ErrNotConfigured
	}
	return subscription.Get(id, nil)
}
