package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
)

// Mock stands in for a real gateway in demo mode. It accepts any non-empty
// proof for orders it created itself.
type Mock struct {
	info domain.Gateway

	mu     sync.Mutex
	orders map[string]struct{}
}

// NewMock returns a demo adapter presenting itself as info.
func NewMock(info domain.Gateway) *Mock {
	return &Mock{info: info, orders: make(map[string]struct{})}
}

// Demo returns mock adapters for every supported gateway.
func Demo() []*Mock {
	return []*Mock{
		NewMock((&Razorpay{}).Info()),
		NewMock((&Stripe{}).Info()),
		NewMock((&PayPal{}).Info()),
	}
}

// Info describes the gateway.
func (m *Mock) Info() domain.Gateway {
	return m.info
}

// CreateOrder records a new demo order.
func (m *Mock) CreateOrder(_ context.Context, _ decimal.Decimal, _, _ string) (domain.Order, error) {
	ref := m.info.ID + "_" + uuid.NewString()

	m.mu.Lock()
	m.orders[ref] = struct{}{}
	m.mu.Unlock()

	o := domain.Order{Reference: ref, KeyID: "demo_key"}
	if m.info.ID == IDStripe {
		o.ClientSecret = ref + "_secret"
	}

	return o, nil
}

// Verify accepts orders created by this adapter paid with a non-empty proof.
func (m *Mock) Verify(_ context.Context, order domain.Order, proof domain.PaymentProof) (bool, error) {
	m.mu.Lock()
	_, ok := m.orders[order.Reference]
	m.mu.Unlock()

	return ok && (proof.PaymentID != "" || proof.Signature != ""), nil
}
