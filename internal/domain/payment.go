package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnsupportedGateway indicates an unknown or unconfigured payment gateway.
	ErrUnsupportedGateway = errors.New("unsupported payment gateway")
	// ErrOrderNotFound indicates the order is unknown, foreign or already credited.
	ErrOrderNotFound = errors.New("order not found")
	// ErrPaymentNotVerified indicates that the gateway did not confirm the payment.
	ErrPaymentNotVerified = errors.New("payment verification failed")
)

// Gateway describes a payment gateway offered to clients.
type Gateway struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Order is a gateway order the server created and waits to confirm.
type Order struct {
	Reference    string          `json:"reference"`
	Gateway      string          `json:"gateway"`
	Payer        string          `json:"payer"`
	Beneficiary  string          `json:"beneficiary"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ClientSecret string          `json:"client_secret,omitempty"`
	KeyID        string          `json:"key_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PaymentProof is what the client returns after paying on the gateway side.
type PaymentProof struct {
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}
