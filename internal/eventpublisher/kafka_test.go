package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/metrics"
)

func TestEncode(t *testing.T) {
	e := domain.LedgerEvent{
		Type:          domain.EventInvoiceSettled,
		Account:       "student1",
		TransactionID: "A1B2C3D4",
		InvoiceID:     "0b7e6d5c-0000-4000-8000-000000000000",
		Amount:        decimal.RequireFromString("-12050"),
		Balance:       decimal.RequireFromString("137950"),
		OccurredAt:    time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	msg, err := Encode(e)
	require.NoError(t, err)
	require.Equal(t, []byte("student1"), msg.Key)
	require.Equal(t, e.OccurredAt, msg.Time)
	require.Equal(t, "type", msg.Headers[0].Key)
	require.Equal(t, []byte("invoice.settled"), msg.Headers[0].Value)

	var got domain.LedgerEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	require.Equal(t, e.Type, got.Type)
	require.Equal(t, e.TransactionID, got.TransactionID)
	require.True(t, e.Amount.Equal(got.Amount))
	require.True(t, e.Balance.Equal(got.Balance))
}

func TestPublishDoesNotWaitForBrokers(t *testing.T) {
	// Nothing listens on port 1, so every delivery attempt fails.
	k := NewKafka([]string{"127.0.0.1:1"}, "edupay.ledger", zerolog.Nop())

	e := domain.LedgerEvent{
		Type:       domain.EventPaymentRecorded,
		Account:    "student1",
		Amount:     decimal.RequireFromString("-10"),
		OccurredAt: time.Now(),
	}

	start := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, k.Publish(context.Background(), e))
	}

	require.Less(t, time.Since(start), time.Second)
}

func TestCompleteCountsFailures(t *testing.T) {
	k := NewKafka([]string{"127.0.0.1:1"}, "edupay.ledger", zerolog.Nop())
	counter := metrics.AncillaryFailures.WithLabelValues("event")

	before := testutil.ToFloat64(counter)

	k.complete([]kafka.Message{{Key: []byte("student1")}, {Key: []byte("student2")}}, errors.New("broker down"))
	require.Equal(t, before+2, testutil.ToFloat64(counter))

	k.complete([]kafka.Message{{Key: []byte("student1")}}, nil)
	require.Equal(t, before+2, testutil.ToFloat64(counter))
}
