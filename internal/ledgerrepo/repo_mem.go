// Package ledgerrepo keeps accounts, invoices and transactions in memory.
//
// Every account has its own lock. All check-then-act sequences on one account
// (settlement, payments, credits, invoice issue, credential changes) run under
// that lock, persist the account record first and commit in memory only when
// persisting succeeded. Operations on different accounts do not contend.
package ledgerrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/errorspkg"
)

// Persister stores account records outside the process.
type Persister interface {
	List(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, a domain.Account) error
}

type ledger struct {
	mu           sync.Mutex
	account      domain.Account
	opening      decimal.Decimal
	transactions []domain.Transaction
	invoices     []domain.Invoice
}

// RepoMem is the in-memory ledger.
type RepoMem struct {
	mu        sync.RWMutex
	ledgers   map[string]*ledger
	persister Persister
	now       func() time.Time

	idsMu sync.Mutex
	ids   map[string]struct{}
}

// NewRepoMem creates an empty ledger that writes account records through p.
// A nil p keeps everything in memory.
func NewRepoMem(p Persister) *RepoMem {
	return &RepoMem{
		ledgers:   make(map[string]*ledger),
		persister: p,
		now:       time.Now,
		ids:       make(map[string]struct{}),
	}
}

// Load reads the persisted accounts. Their balances become the opening balances.
func (r *RepoMem) Load(ctx context.Context) error {
	if r.persister == nil {
		return nil
	}

	accounts, err := r.persister.List(ctx)
	if err != nil {
		l := zerolog.Ctx(ctx)
		l.Error().Err(err).Msg("cannot load accounts")

		return errorspkg.ErrInternal
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range accounts {
		r.ledgers[a.Username] = &ledger{
			account: a.Clone(),
			opening: a.Balance,
		}
	}

	return nil
}

// Len returns the number of accounts.
func (r *RepoMem) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.ledgers)
}

func (r *RepoMem) lookup(username string) (*ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.ledgers[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return l, nil
}

func (r *RepoMem) persist(ctx context.Context, a domain.Account) error {
	if r.persister == nil {
		return nil
	}

	if err := r.persister.Save(ctx, a); err != nil {
		l := zerolog.Ctx(ctx)
		l.Error().Err(err).Str("username", a.Username).Msg("cannot persist account")

		return errorspkg.ErrInternal
	}

	return nil
}

// newTransactionID returns a reference that no other transaction of this process uses.
func (r *RepoMem) newTransactionID() string {
	r.idsMu.Lock()
	defer r.idsMu.Unlock()

	for {
		id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:domain.TransactionIDLen])
		if _, taken := r.ids[id]; !taken {
			r.ids[id] = struct{}{}
			return id
		}
	}
}

// Create adds a new account.
func (r *RepoMem) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ledgers[a.Username]; ok {
		return domain.Account{}, domain.ErrUsernameAlreadyExists
	}

	a = a.Clone()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = r.now()
	}

	if err := r.persist(ctx, a); err != nil {
		return domain.Account{}, err
	}

	r.ledgers[a.Username] = &ledger{
		account: a,
		opening: a.Balance,
	}

	return a.Clone(), nil
}

// Get returns a copy of the account.
func (r *RepoMem) Get(_ context.Context, username string) (domain.Account, error) {
	l, err := r.lookup(username)
	if err != nil {
		return domain.Account{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.account.Clone(), nil
}

// List returns copies of all accounts ordered by username.
func (r *RepoMem) List(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	ledgers := make([]*ledger, 0, len(r.ledgers))
	for _, l := range r.ledgers {
		ledgers = append(ledgers, l)
	}
	r.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(ledgers))

	for _, l := range ledgers {
		l.mu.Lock()
		accounts = append(accounts, l.account.Clone())
		l.mu.Unlock()
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Username < accounts[j].Username
	})

	return accounts, nil
}

// Update applies fn to the account under its lock and persists the result.
// fn may change credentials and profile data; username, role and balance are kept.
func (r *RepoMem) Update(ctx context.Context, username string, fn func(domain.Account) (domain.Account, error)) (domain.Account, error) {
	l, err := r.lookup(username)
	if err != nil {
		return domain.Account{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	updated, err := fn(l.account.Clone())
	if err != nil {
		return domain.Account{}, err
	}

	updated.Username = l.account.Username
	updated.Role = l.account.Role
	updated.Balance = l.account.Balance
	updated.CreatedAt = l.account.CreatedAt

	if err := r.persist(ctx, updated); err != nil {
		return domain.Account{}, err
	}

	l.account = updated.Clone()

	return updated, nil
}

// Settle pays a pending invoice of the account from its balance.
//
// The invoice must exist, belong to the account and be pending, and the
// balance must cover the amount. authorize is called last, still under the
// account lock, and may veto the settlement. Nothing changes on any error.
func (r *RepoMem) Settle(ctx context.Context, username string, invoiceID uuid.UUID, authorize func(domain.Account) error) (domain.SettleTxResult, error) {
	l, err := r.lookup(username)
	if err != nil {
		return domain.SettleTxResult{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.invoices {
		if l.invoices[i].ID == invoiceID {
			idx = i
			break
		}
	}

	if idx < 0 || l.invoices[idx].Status != domain.InvoiceStatusPending {
		return domain.SettleTxResult{}, domain.ErrInvalidInvoice
	}

	inv := l.invoices[idx]

	if l.account.Balance.LessThan(inv.Amount) {
		return domain.SettleTxResult{}, domain.ErrInsufficientBalance
	}

	if authorize != nil {
		if err := authorize(l.account.Clone()); err != nil {
			return domain.SettleTxResult{}, err
		}
	}

	now := r.now()

	updated := l.account.Clone()
	updated.Balance = l.account.Balance.Sub(inv.Amount)

	if err := r.persist(ctx, updated); err != nil {
		return domain.SettleTxResult{}, err
	}

	invID := inv.ID
	tx := domain.Transaction{
		ID:          r.newTransactionID(),
		Owner:       username,
		CreatedAt:   now,
		Description: "Invoice Payment: " + inv.Description,
		Amount:      inv.Amount.Neg(),
		Balance:     updated.Balance,
		InvoiceID:   &invID,
	}

	paid := now
	inv.Status = domain.InvoiceStatusPaid
	inv.PaidDate = &paid

	l.account = updated
	l.transactions = append(l.transactions, tx)
	l.invoices[idx] = inv

	return domain.SettleTxResult{
		Transaction: tx,
		Invoice:     inv,
		Account:     updated.Clone(),
	}, nil
}

// Post appends a transaction of the signed amount that is not tied to an invoice.
// A negative amount must be covered by the balance.
func (r *RepoMem) Post(ctx context.Context, username string, amount decimal.Decimal, arg domain.PostParams) (domain.Transaction, error) {
	if amount.IsZero() {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}

	l, err := r.lookup(username)
	if err != nil {
		return domain.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	newBalance := l.account.Balance.Add(amount)
	if newBalance.IsNegative() {
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	updated := l.account.Clone()
	updated.Balance = newBalance

	if err := r.persist(ctx, updated); err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		ID:                r.newTransactionID(),
		Owner:             username,
		CreatedAt:         r.now(),
		Description:       arg.Description,
		Amount:            amount,
		Balance:           newBalance,
		Gateway:           arg.Gateway,
		ExternalPaymentID: arg.ExternalPaymentID,
	}

	l.account = updated
	l.transactions = append(l.transactions, tx)

	return tx, nil
}

// IssueInvoice adds a pending invoice to the account.
func (r *RepoMem) IssueInvoice(_ context.Context, username string, arg domain.CreateInvoiceParams) (domain.Invoice, error) {
	if !arg.Amount.IsPositive() {
		return domain.Invoice{}, domain.ErrInvalidAmount
	}

	l, err := r.lookup(username)
	if err != nil {
		return domain.Invoice{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	issued := arg.IssueDate
	if issued.IsZero() {
		issued = r.now()
	}

	inv := domain.Invoice{
		ID:          uuid.New(),
		Owner:       username,
		IssueDate:   issued,
		DueDate:     arg.DueDate,
		Description: arg.Description,
		Amount:      arg.Amount,
		Status:      domain.InvoiceStatusPending,
	}

	l.invoices = append(l.invoices, inv)

	return inv, nil
}

// ListInvoices returns the account's invoices ordered by due date.
func (r *RepoMem) ListInvoices(_ context.Context, username string) ([]domain.Invoice, error) {
	l, err := r.lookup(username)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	invoices := make([]domain.Invoice, len(l.invoices))
	copy(invoices, l.invoices)
	l.mu.Unlock()

	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].DueDate.Before(invoices[j].DueDate)
	})

	return invoices, nil
}

// ListTransactions returns a page of the account's transactions, newest first.
func (r *RepoMem) ListTransactions(_ context.Context, username string, limit, offset int32) ([]domain.Transaction, error) {
	l, err := r.lookup(username)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	n := int32(len(l.transactions))
	if offset < 0 || offset >= n || limit <= 0 {
		return []domain.Transaction{}, nil
	}

	end := n
	if int64(offset)+int64(limit) < int64(n) {
		end = offset + limit
	}

	page := make([]domain.Transaction, 0, end-offset)
	for i := offset; i < end; i++ {
		page = append(page, l.transactions[n-1-i])
	}

	return page, nil
}

// GetTransaction returns one transaction of the account.
func (r *RepoMem) GetTransaction(_ context.Context, username, id string) (domain.Transaction, error) {
	l, err := r.lookup(username)
	if err != nil {
		return domain.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range l.transactions {
		if t.ID == id {
			return t, nil
		}
	}

	return domain.Transaction{}, domain.ErrTransactionNotFound
}

// Statement returns the opening balance, all transactions in order and the current balance.
func (r *RepoMem) Statement(_ context.Context, username string) (domain.Statement, error) {
	l, err := r.lookup(username)
	if err != nil {
		return domain.Statement{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	txs := make([]domain.Transaction, len(l.transactions))
	copy(txs, l.transactions)

	return domain.Statement{
		Account:        l.account.WithoutSecrets(),
		OpeningBalance: l.opening,
		Transactions:   txs,
		ClosingBalance: l.account.Balance,
	}, nil
}
