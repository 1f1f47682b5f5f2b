package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInvoice indicates that the invoice is missing, foreign or already paid.
	ErrInvalidInvoice = errors.New("invalid invoice or already paid")
	// ErrInvalidDescription indicates an empty invoice description.
	ErrInvalidDescription = errors.New("description is required")
	// ErrNotAStudent indicates an operation that only applies to student accounts.
	ErrNotAStudent = errors.New("account is not a student")
)

// DueSoonDays is how close a due date must be for an invoice to be flagged.
const DueSoonDays = 7

// InvoiceStatus is the settlement state of an invoice.
type InvoiceStatus string

// Invoice statuses. Pending moves to Paid exactly once.
const (
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
)

// Invoice is an amount owed by a student.
type Invoice struct {
	ID          uuid.UUID       `json:"id"`
	Owner       string          `json:"owner"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     time.Time       `json:"due_date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      InvoiceStatus   `json:"status"`
	PaidDate    *time.Time      `json:"paid_date,omitempty"`
}

// DueSoon reports whether the due date is at most DueSoonDays calendar days after now.
// Overdue invoices are due soon as well.
func (i Invoice) DueSoon(now time.Time) bool {
	return calendarDays(now, i.DueDate) <= DueSoonDays
}

// Overdue reports whether a pending invoice is past its due date.
func (i Invoice) Overdue(now time.Time) bool {
	return i.Status == InvoiceStatusPending && calendarDays(now, i.DueDate) < 0
}

func calendarDays(from, to time.Time) int {
	to = to.In(from.Location())
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(b.Sub(a).Hours() / 24)
}

// IssueInvoiceParams is the input data to issue an invoice. Without Amount the
// invoice charges FeeType from the fee structure of the owner's course and year.
type IssueInvoiceParams struct {
	Owner       string    `json:"owner"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	FeeType     string    `json:"fee_type"`
	DueDate     time.Time `json:"due_date"`
}

// CreateInvoiceParams is the validated data the ledger stores for a new invoice.
type CreateInvoiceParams struct {
	Description string
	Amount      decimal.Decimal
	IssueDate   time.Time
	DueDate     time.Time
}
