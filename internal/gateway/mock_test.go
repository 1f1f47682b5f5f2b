package gateway

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/edupay/internal/domain"
)

func TestDemo(t *testing.T) {
	ids := []string{}
	for _, m := range Demo() {
		ids = append(ids, m.Info().ID)
	}

	require.Equal(t, []string{IDRazorpay, IDStripe, IDPayPal}, ids)
}

func TestMock(t *testing.T) {
	ctx := context.Background()
	m := NewMock(domain.Gateway{ID: IDStripe, Name: "Stripe"})

	o, err := m.CreateOrder(ctx, decimal.RequireFromString("10"), "INR", "receipt")
	require.NoError(t, err)
	require.NotEmpty(t, o.Reference)
	require.NotEmpty(t, o.ClientSecret)

	ok, err := m.Verify(ctx, o, domain.PaymentProof{PaymentID: "pay_1"})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = m.Verify(ctx, o, domain.PaymentProof{})
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = m.Verify(ctx, domain.Order{Reference: "stripe_forged"}, domain.PaymentProof{PaymentID: "pay_1"})
	require.NoError(t, err)
	require.False(t, ok)
}
