package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a ledger event.
type EventType string

// Ledger event types.
const (
	EventInvoiceSettled  EventType = "invoice.settled"
	EventPaymentRecorded EventType = "payment.recorded"
	EventCreditRecorded  EventType = "credit.recorded"
	EventInvoiceIssued   EventType = "invoice.issued"
)

// LedgerEvent is published after a ledger mutation was committed.
type LedgerEvent struct {
	Type          EventType       `json:"type"`
	Account       string          `json:"account"`
	TransactionID string          `json:"transaction_id,omitempty"`
	InvoiceID     string          `json:"invoice_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
