package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/moneypkg"
)

// PayPalBaseURL is the PayPal sandbox API.
const PayPalBaseURL = paypal.APIBaseSandBox

const paypalStatusCompleted = "COMPLETED"

// PayPal creates checkout orders through the PayPal orders API. The client
// fetches and caches the client-credentials token itself.
type PayPal struct {
	clientID string
	client   *paypal.Client
}

// NewPayPal returns a PayPal adapter. An empty baseURL means PayPalBaseURL.
func NewPayPal(clientID, clientSecret, baseURL string) (*PayPal, error) {
	if baseURL == "" {
		baseURL = PayPalBaseURL
	}

	c, err := paypal.NewClient(clientID, clientSecret, strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, err
	}

	c.SetHTTPClient(newHTTPClient())

	return &PayPal{clientID: clientID, client: c}, nil
}

// Info describes the gateway.
func (p *PayPal) Info() domain.Gateway {
	return domain.Gateway{
		ID:          IDPayPal,
		Name:        "PayPal",
		Description: "Pay using PayPal account",
	}
}

// CreateOrder creates a checkout order with intent CAPTURE for amount.
func (p *PayPal) CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (domain.Order, error) {
	units := []paypal.PurchaseUnitRequest{{
		ReferenceID: receipt,
		Amount: &paypal.PurchaseUnitAmount{
			Currency: currency,
			Value:    moneypkg.Format(amount),
		},
	}}

	created, err := p.client.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("paypal create order: %w", err)
	}

	return domain.Order{Reference: created.ID, KeyID: p.clientID}, nil
}

// Verify reports whether the order was captured for the recorded amount.
func (p *PayPal) Verify(ctx context.Context, order domain.Order, _ domain.PaymentProof) (bool, error) {
	got, err := p.client.GetOrder(ctx, order.Reference)
	if err != nil {
		return false, fmt.Errorf("paypal get order: %w", err)
	}

	if got.Status != paypalStatusCompleted || len(got.PurchaseUnits) == 0 || got.PurchaseUnits[0].Amount == nil {
		return false, nil
	}

	paid := got.PurchaseUnits[0].Amount

	value, err := decimal.NewFromString(paid.Value)
	if err != nil {
		return false, nil
	}

	return value.Equal(order.Amount) && strings.EqualFold(paid.Currency, order.Currency), nil
}
