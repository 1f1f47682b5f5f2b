package ledgerservice

import (
	"context"

	"github.com/go-petr/edupay/internal/domain"
)

// ReceiptRenderer renders a receipt document.
//
//go:generate mockgen -source collaborators.go -destination collaborators_mock.go -package ledgerservice
type ReceiptRenderer interface {
	Generate(r domain.Receipt) ([]byte, error)
}

// Mailer delivers receipts to payers and due reminders to students and parents.
type Mailer interface {
	SendReceipt(ctx context.Context, e domain.ReceiptEmail) error
	SendReminder(ctx context.Context, e domain.ReminderEmail) error
}

// Publisher publishes committed ledger events.
type Publisher interface {
	Publish(ctx context.Context, e domain.LedgerEvent) error
}
