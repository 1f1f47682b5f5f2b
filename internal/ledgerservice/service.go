// Package ledgerservice manages the business rules of the tuition ledger:
// invoice settlement, direct payments, gateway credits, invoice issue, the fee
// structure and due reminders.
package ledgerservice

import (
	"context"
	"html"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/guard"
	"github.com/go-petr/edupay/internal/metrics"
	"github.com/go-petr/edupay/pkg/moneypkg"
)

// Repo provides data access layer interface needed by ledger service layer.
type Repo interface {
	Get(ctx context.Context, username string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Settle(ctx context.Context, username string, invoiceID uuid.UUID, authorize func(domain.Account) error) (domain.SettleTxResult, error)
	Post(ctx context.Context, username string, amount decimal.Decimal, arg domain.PostParams) (domain.Transaction, error)
	IssueInvoice(ctx context.Context, username string, arg domain.CreateInvoiceParams) (domain.Invoice, error)
	ListInvoices(ctx context.Context, username string) ([]domain.Invoice, error)
	ListTransactions(ctx context.Context, username string, limit, offset int32) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, username, id string) (domain.Transaction, error)
	Statement(ctx context.Context, username string) (domain.Statement, error)
}

// ReminderLog keeps the history of sent reminders.
type ReminderLog interface {
	Add(ctx context.Context, r domain.Reminder) error
	Recent(ctx context.Context, n int) ([]domain.Reminder, error)
}

// FeeSchedule stores the fee structure of the institution.
type FeeSchedule interface {
	Structure(ctx context.Context) (domain.FeeStructure, error)
	Class(ctx context.Context, course, year string) (domain.FeeClass, error)
	SetFee(ctx context.Context, course, year, feeType string, amount decimal.Decimal) (domain.FeeClass, error)
}

// Verifier checks secrets under a failed-attempt limit.
type Verifier interface {
	Allow(ctx context.Context, key string) error
	Verify(ctx context.Context, key, plain, hashed string, mismatchErr error) error
}

// DefaultDescription is used for direct payments without a description.
const DefaultDescription = "Payment"

const maxDescriptionLen = 200

// Service facilitates ledger service layer logic.
type Service struct {
	repo      Repo
	guard     Verifier
	receipts  ReceiptRenderer
	mailer    Mailer
	publisher Publisher
	reminders ReminderLog
	fees      FeeSchedule
	now       func() time.Time
}

// New returns ledger service struct to manage ledger bussines logic.
func New(r Repo, g Verifier, rr ReceiptRenderer, m Mailer, p Publisher, rl ReminderLog, fs FeeSchedule) *Service {
	return &Service{
		repo:      r,
		guard:     g,
		receipts:  rr,
		mailer:    m,
		publisher: p,
		reminders: rl,
		fees:      fs,
		now:       time.Now,
	}
}

func parseAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	a, err := moneypkg.Parse(amount)
	if err != nil {
		l := zerolog.Ctx(ctx)
		l.Info().Err(err).Str("amount", amount).Send()

		return decimal.Zero, domain.ErrInvalidAmount
	}

	return a, nil
}

func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxDescriptionLen {
		s = string(r[:maxDescriptionLen])
	}

	return html.EscapeString(s)
}

// Settle pays a pending invoice of username from the balance after the
// passcode is verified. A blocked passcode guard fails with
// domain.ErrRateLimited before anything else is checked.
func (s *Service) Settle(ctx context.Context, username, clientIP string, invoiceID uuid.UUID, passcode string) (domain.Receipt, error) {
	key := guard.Key(guard.ScopePasscode, username, clientIP)

	if err := s.guard.Allow(ctx, key); err != nil {
		metrics.ObserveLedger("settle", err)
		return domain.Receipt{}, err
	}

	res, err := s.repo.Settle(ctx, username, invoiceID, func(a domain.Account) error {
		return s.guard.Verify(ctx, key, passcode, a.HashedPasscode, domain.ErrWrongPasscode)
	})

	metrics.ObserveLedger("settle", err)

	if err != nil {
		return domain.Receipt{}, err
	}

	l := zerolog.Ctx(ctx)
	l.Info().
		Str("username", username).
		Str("invoice_id", invoiceID.String()).
		Str("transaction_id", res.Transaction.ID).
		Msg("invoice settled")

	receipt := domain.NewReceipt(res.Account.WithoutSecrets(), res.Transaction)

	s.publish(ctx, domain.LedgerEvent{
		Type:          domain.EventInvoiceSettled,
		Account:       username,
		TransactionID: res.Transaction.ID,
		InvoiceID:     invoiceID.String(),
		Amount:        res.Transaction.Amount,
		Balance:       res.Transaction.Balance,
		OccurredAt:    res.Transaction.CreatedAt,
	})

	s.deliverReceipt(ctx, receipt)

	return receipt, nil
}

// deliverReceipt renders the receipt and emails it. Failures are logged only.
func (s *Service) deliverReceipt(ctx context.Context, r domain.Receipt) {
	l := zerolog.Ctx(ctx)

	if r.Email == "" {
		return
	}

	doc, err := s.receipts.Generate(r)
	if err != nil {
		metrics.AncillaryFailures.WithLabelValues("receipt").Inc()
		l.Error().Err(err).Str("transaction_id", r.TransactionID).Msg("cannot generate receipt")

		return
	}

	err = s.mailer.SendReceipt(ctx, domain.ReceiptEmail{
		To:            r.Email,
		PayerName:     r.FullName,
		TransactionID: r.TransactionID,
		Amount:        r.Amount,
		Date:          r.Date,
		Document:      doc,
	})
	if err != nil {
		metrics.AncillaryFailures.WithLabelValues("email").Inc()
		l.Error().Err(err).Str("transaction_id", r.TransactionID).Msg("cannot email receipt")
	}
}

func (s *Service) publish(ctx context.Context, e domain.LedgerEvent) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		metrics.AncillaryFailures.WithLabelValues("event").Inc()

		l := zerolog.Ctx(ctx)
		l.Error().Err(err).Str("type", string(e.Type)).Str("account", e.Account).Msg("cannot publish event")
	}
}

// RecordDirectPayment debits amount from the balance of username.
func (s *Service) RecordDirectPayment(ctx context.Context, username, amount, description string) (domain.Transaction, error) {
	a, err := parseAmount(ctx, amount)
	if err != nil {
		metrics.ObserveLedger("direct_payment", err)
		return domain.Transaction{}, err
	}

	desc := cleanDescription(description)
	if desc == "" {
		desc = DefaultDescription
	}

	tx, err := s.repo.Post(ctx, username, a.Neg(), domain.PostParams{Description: desc})

	metrics.ObserveLedger("direct_payment", err)

	if err != nil {
		return domain.Transaction{}, err
	}

	s.publish(ctx, domain.LedgerEvent{
		Type:          domain.EventPaymentRecorded,
		Account:       username,
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Balance:       tx.Balance,
		OccurredAt:    tx.CreatedAt,
	})

	return tx, nil
}

// RecordCredit adds a verified gateway payment to the balance of username.
func (s *Service) RecordCredit(ctx context.Context, username, amount string, arg domain.PostParams) (domain.Transaction, error) {
	a, err := parseAmount(ctx, amount)
	if err != nil {
		metrics.ObserveLedger("credit", err)
		return domain.Transaction{}, err
	}

	arg.Description = cleanDescription(arg.Description)
	if arg.Description == "" {
		arg.Description = "Online Payment via " + arg.Gateway
	}

	tx, err := s.repo.Post(ctx, username, a, arg)

	metrics.ObserveLedger("credit", err)

	if err != nil {
		return domain.Transaction{}, err
	}

	l := zerolog.Ctx(ctx)
	l.Info().
		Str("username", username).
		Str("gateway", arg.Gateway).
		Str("transaction_id", tx.ID).
		Msg("credit recorded")

	s.publish(ctx, domain.LedgerEvent{
		Type:          domain.EventCreditRecorded,
		Account:       username,
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Balance:       tx.Balance,
		OccurredAt:    tx.CreatedAt,
	})

	return tx, nil
}

// IssueInvoice creates a pending invoice for a student. An invoice without an
// amount charges arg.FeeType from the fee structure of the student's course
// and year.
func (s *Service) IssueInvoice(ctx context.Context, arg domain.IssueInvoiceParams) (domain.Invoice, error) {
	scheduled := arg.Amount == "" && arg.FeeType != ""

	var (
		a   decimal.Decimal
		err error
	)

	if scheduled {
		arg.FeeType = strings.ToLower(strings.TrimSpace(arg.FeeType))
		if !domain.ValidFeeType(arg.FeeType) {
			return domain.Invoice{}, domain.ErrInvalidFeeType
		}
	} else if a, err = parseAmount(ctx, arg.Amount); err != nil {
		metrics.ObserveLedger("issue_invoice", err)
		return domain.Invoice{}, err
	}

	desc := cleanDescription(arg.Description)
	if desc == "" && scheduled {
		desc = domain.FeeDescription(arg.FeeType)
	}

	if desc == "" {
		return domain.Invoice{}, domain.ErrInvalidDescription
	}

	owner, err := s.repo.Get(ctx, arg.Owner)
	if err != nil {
		return domain.Invoice{}, err
	}

	if owner.Role != domain.RoleStudent {
		return domain.Invoice{}, domain.ErrNotAStudent
	}

	if scheduled {
		if a, err = s.scheduledFee(ctx, owner, arg.FeeType); err != nil {
			metrics.ObserveLedger("issue_invoice", err)
			return domain.Invoice{}, err
		}
	}

	inv, err := s.repo.IssueInvoice(ctx, arg.Owner, domain.CreateInvoiceParams{
		Description: desc,
		Amount:      a,
		IssueDate:   s.now(),
		DueDate:     arg.DueDate,
	})

	metrics.ObserveLedger("issue_invoice", err)

	if err != nil {
		return domain.Invoice{}, err
	}

	s.publish(ctx, domain.LedgerEvent{
		Type:       domain.EventInvoiceIssued,
		Account:    arg.Owner,
		InvoiceID:  inv.ID.String(),
		Amount:     inv.Amount,
		Balance:    owner.Balance,
		OccurredAt: inv.IssueDate,
	})

	return inv, nil
}

// ListInvoices returns the invoices of username ordered by due date.
func (s *Service) ListInvoices(ctx context.Context, username string, pendingOnly bool) ([]domain.Invoice, error) {
	invoices, err := s.repo.ListInvoices(ctx, username)
	if err != nil {
		return nil, err
	}

	if !pendingOnly {
		return invoices, nil
	}

	pending := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status == domain.InvoiceStatusPending {
			pending = append(pending, inv)
		}
	}

	return pending, nil
}

// ListTransactions returns a page of transactions of username, newest first.
// Pages start at 1. Pages past the last transaction are empty.
func (s *Service) ListTransactions(ctx context.Context, username string, pageID, pageSize int32) ([]domain.Transaction, error) {
	if pageID < 1 || pageSize < 1 {
		return []domain.Transaction{}, nil
	}

	offset := (int64(pageID) - 1) * int64(pageSize)
	if offset > math.MaxInt32 {
		if _, err := s.repo.Get(ctx, username); err != nil {
			return nil, err
		}

		return []domain.Transaction{}, nil
	}

	return s.repo.ListTransactions(ctx, username, pageSize, int32(offset))
}

// Receipt rebuilds the receipt of a past payment of username.
func (s *Service) Receipt(ctx context.Context, username, transactionID string) (domain.Receipt, []byte, error) {
	tx, err := s.repo.GetTransaction(ctx, username, strings.ToUpper(transactionID))
	if err != nil {
		return domain.Receipt{}, nil, err
	}

	if !tx.Amount.IsNegative() {
		return domain.Receipt{}, nil, domain.ErrTransactionNotFound
	}

	a, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.Receipt{}, nil, err
	}

	receipt := domain.NewReceipt(a.WithoutSecrets(), tx)

	doc, err := s.receipts.Generate(receipt)
	if err != nil {
		l := zerolog.Ctx(ctx)
		l.Error().Err(err).Str("transaction_id", tx.ID).Msg("cannot generate receipt")

		return domain.Receipt{}, nil, err
	}

	return receipt, doc, nil
}

// Statement returns the ledger of username since its opening balance.
func (s *Service) Statement(ctx context.Context, username string) (domain.Statement, error) {
	return s.repo.Statement(ctx, username)
}

func (s *Service) summary(ctx context.Context, a domain.Account) (domain.StudentSummary, error) {
	invoices, err := s.repo.ListInvoices(ctx, a.Username)
	if err != nil {
		return domain.StudentSummary{}, err
	}

	result := domain.StudentSummary{
		Account:       a.WithoutSecrets(),
		PendingAmount: decimal.Zero,
		Status:        domain.StudentStatusPaid,
	}

	for _, inv := range invoices {
		if inv.Status != domain.InvoiceStatusPending {
			continue
		}

		result.PendingAmount = result.PendingAmount.Add(inv.Amount)
		result.PendingInvoices++
		result.Status = domain.StudentStatusOverdue
	}

	return result, nil
}

// Students returns the fee summary of every student.
func (s *Service) Students(ctx context.Context) ([]domain.StudentSummary, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := []domain.StudentSummary{}

	for _, a := range accounts {
		if a.Role != domain.RoleStudent {
			continue
		}

		sum, err := s.summary(ctx, a)
		if err != nil {
			return nil, err
		}

		result = append(result, sum)
	}

	return result, nil
}

// StudentDetails returns the profile, invoices and transactions of a student.
func (s *Service) StudentDetails(ctx context.Context, username string) (domain.StudentDetails, error) {
	a, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.StudentDetails{}, err
	}

	if a.Role != domain.RoleStudent {
		return domain.StudentDetails{}, domain.ErrNotAStudent
	}

	invoices, err := s.repo.ListInvoices(ctx, username)
	if err != nil {
		return domain.StudentDetails{}, err
	}

	st, err := s.repo.Statement(ctx, username)
	if err != nil {
		return domain.StudentDetails{}, err
	}

	txs := make([]domain.Transaction, 0, len(st.Transactions))
	for i := len(st.Transactions) - 1; i >= 0; i-- {
		txs = append(txs, st.Transactions[i])
	}

	return domain.StudentDetails{
		Account:      a.WithoutSecrets(),
		Invoices:     invoices,
		Transactions: txs,
	}, nil
}

// Children returns the fee summaries of the children linked to parent.
func (s *Service) Children(ctx context.Context, parent string) ([]domain.StudentSummary, error) {
	p, err := s.repo.Get(ctx, parent)
	if err != nil {
		return nil, err
	}

	result := []domain.StudentSummary{}

	for _, child := range p.Children {
		c, err := s.repo.Get(ctx, child)
		if err != nil {
			l := zerolog.Ctx(ctx)
			l.Warn().Err(err).Str("parent", parent).Str("child", child).Msg("linked child is missing")

			continue
		}

		sum, err := s.summary(ctx, c)
		if err != nil {
			return nil, err
		}

		result = append(result, sum)
	}

	return result, nil
}

// CheckChild returns domain.ErrUnauthorized unless child is linked to parent.
func (s *Service) CheckChild(ctx context.Context, parent, child string) error {
	p, err := s.repo.Get(ctx, parent)
	if err != nil {
		return err
	}

	if !p.HasChild(child) {
		return domain.ErrUnauthorized
	}

	return nil
}
