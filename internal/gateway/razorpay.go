package gateway

import (
	"context"
	"fmt"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/moneypkg"
)

// RazorpayBaseURL is the production Razorpay API.
const RazorpayBaseURL = "https://api.razorpay.com"

// Razorpay creates orders through the Razorpay orders API and verifies the
// checkout signature returned to the client.
type Razorpay struct {
	keyID     string
	keySecret string
	client    *razorpay.Client
}

// NewRazorpay returns a Razorpay adapter. An empty baseURL means RazorpayBaseURL.
func NewRazorpay(keyID, keySecret, baseURL string) *Razorpay {
	if baseURL == "" {
		baseURL = RazorpayBaseURL
	}

	c := razorpay.NewClient(keyID, keySecret)
	razorpay.Request.BaseURL = strings.TrimRight(baseURL, "/")
	razorpay.Request.HTTPClient = newHTTPClient()

	return &Razorpay{
		keyID:     keyID,
		keySecret: keySecret,
		client:    c,
	}
}

// Info describes the gateway.
func (r *Razorpay) Info() domain.Gateway {
	return domain.Gateway{
		ID:          IDRazorpay,
		Name:        "Razorpay",
		Description: "Pay using UPI, GPay, PhonePe, Paytm, Cards",
	}
}

// CreateOrder creates a Razorpay order for amount.
func (r *Razorpay) CreateOrder(_ context.Context, amount decimal.Decimal, currency, receipt string) (domain.Order, error) {
	body, err := r.client.Order.Create(map[string]interface{}{
		"amount":   moneypkg.MinorUnits(amount),
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("razorpay create order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return domain.Order{}, fmt.Errorf("razorpay create order: response without id")
	}

	return domain.Order{Reference: id, KeyID: r.keyID}, nil
}

// Verify checks the checkout signature, an HMAC-SHA256 of "order_id|payment_id"
// keyed with the key secret.
func (r *Razorpay) Verify(_ context.Context, order domain.Order, proof domain.PaymentProof) (bool, error) {
	if order.Reference == "" || proof.PaymentID == "" || proof.Signature == "" {
		return false, nil
	}

	params := map[string]interface{}{
		"razorpay_order_id":   order.Reference,
		"razorpay_payment_id": proof.PaymentID,
	}

	return utils.VerifyPaymentSignature(params, proof.Signature, r.keySecret), nil
}
