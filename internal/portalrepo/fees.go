package portalrepo

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/go-petr/edupay/internal/domain"
)

// Fees is the fee structure of the institution.
type Fees struct {
	mu      sync.RWMutex
	classes domain.FeeStructure
}

// NewFees creates a fee structure holding a copy of classes.
func NewFees(classes domain.FeeStructure) *Fees {
	f := &Fees{classes: make(domain.FeeStructure, 0, len(classes))}

	for _, c := range classes {
		f.classes = append(f.classes, c.Clone())
	}

	f.classes.Sort()

	return f
}

// Structure returns a copy of every fee class.
func (f *Fees) Structure(ctx context.Context) (domain.FeeStructure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.snapshot(), nil
}

func (f *Fees) snapshot() domain.FeeStructure {
	result := make(domain.FeeStructure, 0, len(f.classes))
	for _, c := range f.classes {
		result = append(result, c.Clone())
	}

	return result
}

// Class returns a copy of the fee class of course and year.
func (f *Fees) Class(ctx context.Context, course, year string) (domain.FeeClass, error) {
	if err := ctx.Err(); err != nil {
		return domain.FeeClass{}, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	c, ok := f.classes.Find(course, year)
	if !ok {
		return domain.FeeClass{}, domain.ErrFeeClassNotFound
	}

	return c.Clone(), nil
}

// SetFee sets feeType of an existing class to amount and returns the updated class.
func (f *Fees) SetFee(ctx context.Context, course, year, feeType string, amount decimal.Decimal) (domain.FeeClass, error) {
	if err := ctx.Err(); err != nil {
		return domain.FeeClass{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.classes {
		c := &f.classes[i]
		if c.Course != course || c.Year != year {
			continue
		}

		if c.Fees == nil {
			c.Fees = make(map[string]decimal.Decimal)
		}

		c.Fees[feeType] = amount

		return c.Clone(), nil
	}

	return domain.FeeClass{}, domain.ErrFeeClassNotFound
}
