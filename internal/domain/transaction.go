package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// TransactionIDLen is the length of the public transaction reference.
const TransactionIDLen = 8

// Transaction is an immutable ledger entry. Amount is negative for payments and
// positive for credits; Balance is the account balance right after the entry.
type Transaction struct {
	ID                string          `json:"id"`
	Owner             string          `json:"owner"`
	CreatedAt         time.Time       `json:"created_at"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Balance           decimal.Decimal `json:"balance"`
	InvoiceID         *uuid.UUID      `json:"invoice_id,omitempty"`
	Gateway           string          `json:"gateway,omitempty"`
	ExternalPaymentID string          `json:"external_payment_id,omitempty"`
}

// PostParams describes a ledger entry that is not tied to an invoice.
type PostParams struct {
	Description       string
	Gateway           string
	ExternalPaymentID string
}

// SettleTxResult is the result of an invoice settlement.
type SettleTxResult struct {
	Transaction Transaction
	Invoice     Invoice
	Account     Account
}

// Receipt is the proof of a payment handed to the payer.
type Receipt struct {
	TransactionID string          `json:"transaction_id"`
	InvoiceID     *uuid.UUID      `json:"invoice_id,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Username      string          `json:"username"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	Course        string          `json:"course,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
}

// NewReceipt builds the receipt of a payment transaction made by the account.
func NewReceipt(a AccountWithoutSecrets, t Transaction) Receipt {
	return Receipt{
		TransactionID: t.ID,
		InvoiceID:     t.InvoiceID,
		Description:   t.Description,
		Amount:        t.Amount.Abs(),
		Date:          t.CreatedAt,
		Username:      a.Username,
		FullName:      a.FullName,
		Email:         a.Email,
		Course:        a.Profile.Course,
		Balance:       t.Balance,
	}
}

// ReceiptEmail is the message handed to the mailer after a settlement.
type ReceiptEmail struct {
	To            string
	PayerName     string
	TransactionID string
	Amount        decimal.Decimal
	Date          time.Time
	Document      []byte
}

// Statement lists an account's ledger since its opening balance.
type Statement struct {
	Account        AccountWithoutSecrets `json:"account"`
	OpeningBalance decimal.Decimal       `json:"opening_balance"`
	Transactions   []Transaction         `json:"transactions"`
	ClosingBalance decimal.Decimal       `json:"closing_balance"`
}

// Replay returns the opening balance plus every transaction amount.
func (s Statement) Replay() decimal.Decimal {
	sum := s.OpeningBalance
	for _, t := range s.Transactions {
		sum = sum.Add(t.Amount)
	}

	return sum
}

// StudentSummary is the institution view of a student's pending fees.
type StudentSummary struct {
	Account         AccountWithoutSecrets `json:"account"`
	PendingAmount   decimal.Decimal       `json:"pending_amount"`
	PendingInvoices int                   `json:"pending_invoices"`
	Status          string                `json:"status"`
}

// Student statuses in summaries.
const (
	StudentStatusOverdue = "Overdue"
	StudentStatusPaid    = "Paid"
)

// StudentStats aggregates student summaries for the institution.
type StudentStats struct {
	TotalStudents   int             `json:"total_students"`
	PaidStudents    int             `json:"paid_students"`
	OverdueStudents int             `json:"overdue_students"`
	TotalPending    decimal.Decimal `json:"total_pending"`
}

// NewStudentStats counts students by status and sums their pending amounts.
func NewStudentStats(students []StudentSummary) StudentStats {
	stats := StudentStats{
		TotalStudents: len(students),
		TotalPending:  decimal.Zero,
	}

	for _, s := range students {
		switch s.Status {
		case StudentStatusPaid:
			stats.PaidStudents++
		case StudentStatusOverdue:
			stats.OverdueStudents++
		}

		stats.TotalPending = stats.TotalPending.Add(s.PendingAmount)
	}

	return stats
}

// StudentDetails is the full view of a student.
type StudentDetails struct {
	Account      AccountWithoutSecrets `json:"account"`
	Invoices     []Invoice             `json:"invoices"`
	Transactions []Transaction         `json:"transactions"`
}
