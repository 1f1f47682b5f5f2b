package gateway

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/moneypkg"
)

// Stripe creates card payment intents and verifies them by reading the intent
// back from the Stripe API.
type Stripe struct {
	api            *client.API
	publishableKey string
}

// NewStripe returns a Stripe adapter. A nil backends uses the Stripe API.
func NewStripe(secretKey, publishableKey string, backends *stripe.Backends) *Stripe {
	return &Stripe{
		api:            client.New(secretKey, backends),
		publishableKey: publishableKey,
	}
}

// Info describes the gateway.
func (s *Stripe) Info() domain.Gateway {
	return domain.Gateway{
		ID:          IDStripe,
		Name:        "Stripe",
		Description: "Pay using Credit/Debit Cards",
	}
}

// CreateOrder creates a card payment intent for amount.
func (s *Stripe) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (domain.Order, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(moneypkg.MinorUnits(amount)),
		Currency:           stripe.String(strings.ToLower(currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.AddMetadata("receipt", receipt)

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		Reference:    pi.ID,
		ClientSecret: pi.ClientSecret,
		KeyID:        s.publishableKey,
	}, nil
}

// Verify reports whether the intent behind order succeeded for the recorded amount.
func (s *Stripe) Verify(ctx context.Context, order domain.Order, proof domain.PaymentProof) (bool, error) {
	if proof.PaymentID != "" && proof.PaymentID != order.Reference {
		return false, nil
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.Get(order.Reference, params)
	if err != nil {
		return false, err
	}

	return pi.Status == stripe.PaymentIntentStatusSucceeded &&
		pi.Amount == moneypkg.MinorUnits(order.Amount) &&
		strings.EqualFold(string(pi.Currency), order.Currency), nil
}
