package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/plutov/paypal/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/edupay/internal/domain"
)

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalPurchaseUnit struct {
	ReferenceID string       `json:"reference_id,omitempty"`
	Amount      paypalAmount `json:"amount"`
}

type paypalOrder struct {
	ID            string               `json:"id,omitempty"`
	Intent        string               `json:"intent,omitempty"`
	Status        string               `json:"status,omitempty"`
	PurchaseUnits []paypalPurchaseUnit `json:"purchase_units"`
}

type paypalStub struct {
	tokens int32
	status string
	value  string
}

func (s *paypalStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/v1/oauth2/token":
		atomic.AddInt32(&s.tokens, 1)

		if user, pass, ok := r.BasicAuth(); !ok || user != "pp_id" || pass != "pp_secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Client Authentication failed"}`))

			return
		}

		_, _ = w.Write([]byte(`{"access_token":"token","token_type":"Bearer","expires_in":3600}`))
	case r.Header.Get("Authorization") != "Bearer token":
		w.WriteHeader(http.StatusUnauthorized)
	case r.Method == http.MethodPost && r.URL.Path == "/v2/checkout/orders":
		var in paypalOrder
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Intent != "CAPTURE" || len(in.PurchaseUnits) != 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		s.value = in.PurchaseUnits[0].Amount.Value

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(paypalOrder{ID: "PP-1", Status: "CREATED"})
	case r.Method == http.MethodGet && r.URL.Path == "/v2/checkout/orders/PP-1":
		_ = json.NewEncoder(w).Encode(paypalOrder{
			ID:     "PP-1",
			Status: s.status,
			PurchaseUnits: []paypalPurchaseUnit{{
				Amount: paypalAmount{CurrencyCode: "INR", Value: s.value},
			}},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"name":"RESOURCE_NOT_FOUND","message":"The specified resource does not exist."}`))
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var perr *paypal.ErrorResponse
	require.True(t, errors.As(err, &perr), "got %v", err)

	return perr.Response.StatusCode
}

func TestPayPal(t *testing.T) {
	stub := &paypalStub{status: "APPROVED"}
	srv := httptest.NewServer(stub)
	defer srv.Close()

	ctx := context.Background()

	p, err := NewPayPal("pp_id", "pp_secret", srv.URL)
	require.NoError(t, err)

	amount := decimal.RequireFromString("250.5")

	o, err := p.CreateOrder(ctx, amount, "INR", "receipt")
	require.NoError(t, err)
	require.Equal(t, "PP-1", o.Reference)
	require.Equal(t, "pp_id", o.KeyID)
	require.Equal(t, "250.50", stub.value)

	order := domain.Order{Reference: o.Reference, Amount: amount, Currency: "INR"}

	ok, err := p.Verify(ctx, order, domain.PaymentProof{})
	require.NoError(t, err)
	require.False(t, ok)

	stub.status = paypalStatusCompleted

	ok, err = p.Verify(ctx, order, domain.PaymentProof{})
	require.NoError(t, err)
	require.True(t, ok)

	order.Amount = decimal.RequireFromString("999")

	ok, err = p.Verify(ctx, order, domain.PaymentProof{})
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, int32(1), atomic.LoadInt32(&stub.tokens))
}

func TestNewPayPalMissingCredentials(t *testing.T) {
	_, err := NewPayPal("", "pp_secret", "")
	require.Error(t, err)
}

func TestPayPalBadCredentials(t *testing.T) {
	srv := httptest.NewServer(&paypalStub{})
	defer srv.Close()

	p, err := NewPayPal("pp_id", "wrong", srv.URL)
	require.NoError(t, err)

	_, err = p.CreateOrder(context.Background(), decimal.RequireFromString("1"), "INR", "receipt")
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestPayPalUnknownOrder(t *testing.T) {
	srv := httptest.NewServer(&paypalStub{})
	defer srv.Close()

	p, err := NewPayPal("pp_id", "pp_secret", srv.URL)
	require.NoError(t, err)

	_, err = p.Verify(context.Background(), domain.Order{Reference: "PP-404"}, domain.PaymentProof{})
	require.Equal(t, http.StatusNotFound, statusOf(t, err))
}
