package ledgerrepo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/errorspkg"
	"github.com/go-petr/edupay/pkg/randompkg"
)

type memPersister struct {
	mu      sync.Mutex
	records map[string]domain.Account
	fail    bool
}

func newMemPersister() *memPersister {
	return &memPersister{records: make(map[string]domain.Account)}
}

func (p *memPersister) List(context.Context) ([]domain.Account, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	accounts := make([]domain.Account, 0, len(p.records))
	for _, a := range p.records {
		accounts = append(accounts, a)
	}

	return accounts, nil
}

func (p *memPersister) Save(_ context.Context, a domain.Account) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fail {
		return errors.New("disk full")
	}

	p.records[a.Username] = a

	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedStudent(t *testing.T, r *RepoMem, balance string) domain.Account {
	t.Helper()

	a, err := r.Create(context.Background(), domain.Account{
		Username: randompkg.Username(),
		FullName: "Test Student",
		Email:    randompkg.Email(),
		Role:     domain.RoleStudent,
		Balance:  dec(balance),
	})
	require.NoError(t, err)

	return a
}

func seedInvoice(t *testing.T, r *RepoMem, username, amount string) domain.Invoice {
	t.Helper()

	inv, err := r.IssueInvoice(context.Background(), username, domain.CreateInvoiceParams{
		Description: "Activity Fee",
		Amount:      dec(amount),
		DueDate:     time.Now().AddDate(0, 0, 45),
	})
	require.NoError(t, err)

	return inv
}

func requireReplay(t *testing.T, r *RepoMem, username string) {
	t.Helper()

	st, err := r.Statement(context.Background(), username)
	require.NoError(t, err)
	require.True(t, st.Replay().Equal(st.ClosingBalance), "replay %v != balance %v", st.Replay(), st.ClosingBalance)
}

func TestCreateDuplicate(t *testing.T) {
	r := NewRepoMem(nil)
	a := seedStudent(t, r, "0")

	_, err := r.Create(context.Background(), domain.Account{Username: a.Username})
	require.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)
}

func TestGetNotFound(t *testing.T) {
	r := NewRepoMem(nil)

	_, err := r.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestSettle(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	r := NewRepoMem(p)

	a := seedStudent(t, r, "150000.00")
	inv := seedInvoice(t, r, a.Username, "12050.00")

	res, err := r.Settle(ctx, a.Username, inv.ID, nil)
	require.NoError(t, err)

	require.True(t, dec("137950.00").Equal(res.Account.Balance))
	require.True(t, dec("-12050.00").Equal(res.Transaction.Amount))
	require.True(t, dec("137950.00").Equal(res.Transaction.Balance))
	require.Equal(t, "Invoice Payment: Activity Fee", res.Transaction.Description)
	require.Len(t, res.Transaction.ID, domain.TransactionIDLen)
	require.Equal(t, inv.ID, *res.Transaction.InvoiceID)
	require.Equal(t, domain.InvoiceStatusPaid, res.Invoice.Status)
	require.NotNil(t, res.Invoice.PaidDate)

	invoices, err := r.ListInvoices(ctx, a.Username)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	require.Equal(t, domain.InvoiceStatusPaid, invoices[0].Status)

	txs, err := r.ListTransactions(ctx, a.Username, 10, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	require.True(t, dec("137950.00").Equal(p.records[a.Username].Balance))
	requireReplay(t, r, a.Username)
}

func TestSettleTwice(t *testing.T) {
	ctx := context.Background()
	r := NewRepoMem(nil)

	a := seedStudent(t, r, "150000.00")
	inv := seedInvoice(t, r, a.Username, "12050.00")

	_, err := r.Settle(ctx, a.Username, inv.ID, nil)
	require.NoError(t, err)

	_, err = r.Settle(ctx, a.Username, inv.ID, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInvoice)

	got, err := r.Get(ctx, a.Username)
	require.NoError(t, err)
	require.True(t, dec("137950.00").Equal(got.Balance))
	requireReplay(t, r, a.Username)
}

func TestSettleBoundary(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		balance string
		amount  string
		wantErr error
	}{
		{name: "ExactBalance", balance: "12050.00", amount: "12050.00"},
		{name: "OneCentShort", balance: "12049.99", amount: "12050.00", wantErr: domain.ErrInsufficientBalance},
		{name: "ZeroBalance", balance: "0", amount: "0.01", wantErr: domain.ErrInsufficientBalance},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			r := NewRepoMem(nil)
			a := seedStudent(t, r, tc.balance)
			inv := seedInvoice(t, r, a.Username, tc.amount)

			_, err := r.Settle(ctx, a.Username, inv.ID, nil)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				got, _ := r.Get(ctx, a.Username)
				require.True(t, dec(tc.balance).Equal(got.Balance))

				invoices, _ := r.ListInvoices(ctx, a.Username)
				require.Equal(t, domain.InvoiceStatusPending, invoices[0].Status)

				return
			}

			require.NoError(t, err)

			got, _ := r.Get(ctx, a.Username)
			require.True(t, got.Balance.IsZero())
			requireReplay(t, r, a.Username)
		})
	}
}

func TestSettleForeignOrUnknownInvoice(t *testing.T) {
	ctx := context.Background()
	r := NewRepoMem(nil)

	a := seedStudent(t, r, "1000")
	b := seedStudent(t, r, "1000")
	inv := seedInvoice(t, r, b.Username, "10")

	_, err := r.Settle(ctx, a.Username, inv.ID, nil)
	require.ErrorIs(t, err, domain.ErrInvalidInvoice)

	_, err = r.Settle(ctx, a.Username, uuid.New(), nil)
	require.ErrorIs(t, err, domain.ErrInvalidInvoice)

	_, err = r.Settle(ctx, "ghost", inv.ID, nil)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestSettleCheckOrder(t *testing.T) {
	ctx := context.Background()
	r := NewRepoMem(nil)

	a := seedStudent(t, r, "5")
	inv := seedInvoice(t, r, a.Username, "10")

	called := false
	deny := func(domain.Account) error {
		called = true
		return domain.ErrWrongPasscode
	}

	_, err := r.Settle(ctx, a.Username, inv.ID, deny)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	require.False(t, called)

	_, err = r.Post(ctx, a.Username, dec("5"), domain.PostParams{Description: "Top up"})
	require.NoError(t, err)

	_, err = r.Settle(ctx, a.Username, inv.ID, deny)
	require.ErrorIs(t, err, domain.ErrWrongPasscode)
	require.True(t, called)

	got, _ := r.Get(ctx, a.Username)
	require.True(t, dec("10").Equal(got.Balance))

	invoices, _ := r.ListInvoices(ctx, a.Username)
	require.Equal(t, domain.InvoiceStatusPending, invoices[0].Status)
}

func TestSettlePersistFailure(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	r := NewRepoMem(p)

	a := seedStudent(t, r, "100")
	inv := seedInvoice(t, r, a.Username, "10")

	p.fail = true

	_, err := r.Settle(ctx, a.Username, inv.ID, nil)
	require.ErrorIs(t, err, errorspkg.ErrInternal)

	got, _ := r.Get(ctx, a.Username)
	require.True(t, dec("100").Equal(got.Balance))

	txs, _ := r.ListTransactions(ctx, a.Username, 10, 0)
	require.Empty(t, txs)

	p.fail = false

	_, err = r.Settle(ctx, a.Username, inv.ID, nil)
	require.NoError(t, err)
	requireReplay(t, r, a.Username)
}

func TestSettleConcurrent(t *testing.T) {
	ctx := context.Background()
	r := NewRepoMem(newMemPersister())

	a := seedStudent(t, r, "150000.00")
	inv := seedInvoice(t, r, a.Username, "12050.00")

	const n = 32

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		invalid int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := r.Settle(ctx, a.Username, inv.ID, nil)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				success++
			case errors.Is(err, domain.ErrInvalidInvoice):
				invalid++
			}
		}()
	}

	wg.Wait()

	require.Equal(t, 1, success)
	require.Equal(t, n-1, invalid)

	got, _ := r.Get(ctx, a.Username)
	require.True(t, dec("137950.00").Equal(got.Balance))
	requireReplay(t, r, a.Username)
}

func TestConcurrentMixedOperations(t *testing.T) {
	ctx := context.Background()
	r := NewRepoMem(newMemPersister())

	a := seedStudent(t, r, "1000.00")

	invoices := make([]domain.Invoice, 10)
	for i := range invoices {
		invoices[i] = seedInvoice(t, r, a.Username, "25.50")
	}

	var wg sync.WaitGroup

	for i := range invoices {
		wg.Add(3)

		go func(id uuid.UUID) {
			defer wg.Done()
			_, _ = r.Settle(ctx, a.Username, id, nil)
		}(invoices[i].ID)

		go func() {
			defer wg.Done()
			_, _ = r.Post(ctx, a.Username, dec("-7.25"), domain.PostParams{Description: "Payment"})
		}()

		go func() {
			defer wg.Done()
			_, _ = r.Post(ctx, a.Username, dec("3.10"), domain.PostParams{Gateway: "mock"})
		}()
	}

	wg.Wait()

	got, _ := r.Get(ctx, a.Username)
	want := dec("1000.00").Sub(dec("25.50").Mul(dec("10"))).Sub(dec("7.25").Mul(dec("10"))).Add(dec("3.10").Mul(dec("10")))
	require.True(t, want.Equal(got.Balance), "got %v want %v", got.Balance, want)
	requireReplay(t, r, a.Username)

	st, _ := r.Statement(ctx, a.Username)
	seen := make(map[string]bool)
	for _, tx := range st.Transactions {
		require.False(t, seen[tx.ID], "duplicate transaction id %s", tx.ID)
		seen[tx.ID] = true
	}
	require.Len(t, seen, 30)
}

func TestPost(t *testing.T) {
	ctx := context.Background()
	r := NewRepoMem(nil)
	a := seedStudent(t, r, "10.00")

	_, err := r.Post(ctx, a.Username, dec("-10.01"), domain.PostParams{})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	_, err = r.Post(ctx, a.Username, decimal.Zero, domain.PostParams{})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	tx, err := r.Post(ctx, a.Username, dec("-10.00"), domain.PostParams{Description: "Payment"})
	require.NoError(t, err)
	require.True(t, tx.Balance.IsZero())
	require.Nil(t, tx.InvoiceID)

	tx, err = r.Post(ctx, a.Username, dec("500"), domain.PostParams{
		Description:       "Online Payment via Razorpay",
		Gateway:           "razorpay",
		ExternalPaymentID: "pay_123",
	})
	require.NoError(t, err)
	require.Equal(t, "razorpay", tx.Gateway)
	require.Equal(t, "pay_123", tx.ExternalPaymentID)
	require.True(t, dec("500").Equal(tx.Balance))

	requireReplay(t, r, a.Username)
}

func TestListTransactionsPaging(t *testing.T) {
	ctx := context.Background()
	r := NewRepoMem(nil)
	a := seedStudent(t, r, "0")

	var ids []string
	for i := 0; i < 5; i++ {
		tx, err := r.Post(ctx, a.Username, dec("1"), domain.PostParams{})
		require.NoError(t, err)
		ids = append(ids, tx.ID)
	}

	page, err := r.ListTransactions(ctx, a.Username, 2, 0)
	require.NoError(t, err)
	require.Equal(t, []string{ids[4], ids[3]}, []string{page[0].ID, page[1].ID})

	page, err = r.ListTransactions(ctx, a.Username, 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, ids[0], page[0].ID)

	page, err = r.ListTransactions(ctx, a.Username, 2, 10)
	require.NoError(t, err)
	require.Empty(t, page)

	got, err := r.GetTransaction(ctx, a.Username, ids[2])
	require.NoError(t, err)
	require.Equal(t, ids[2], got.ID)

	_, err = r.GetTransaction(ctx, a.Username, "NOPE0000")
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestUpdateKeepsBalance(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	r := NewRepoMem(p)
	a := seedStudent(t, r, "42.00")

	got, err := r.Update(ctx, a.Username, func(acc domain.Account) (domain.Account, error) {
		acc.HashedPasscode = "new-hash"
		acc.Balance = dec("1000000")
		return acc, nil
	})
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.HashedPasscode)
	require.True(t, dec("42.00").Equal(got.Balance))
	require.Equal(t, "new-hash", p.records[a.Username].HashedPasscode)

	_, err = r.Update(ctx, a.Username, func(acc domain.Account) (domain.Account, error) {
		return acc, domain.ErrWrongPasscode
	})
	require.ErrorIs(t, err, domain.ErrWrongPasscode)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	p.records["student1"] = domain.Account{Username: "student1", Role: domain.RoleStudent, Balance: dec("150000")}

	r := NewRepoMem(p)
	require.NoError(t, r.Load(ctx))
	require.Equal(t, 1, r.Len())

	st, err := r.Statement(ctx, "student1")
	require.NoError(t, err)
	require.True(t, dec("150000").Equal(st.OpeningBalance))
	require.Empty(t, st.Transactions)

	accounts, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
}
