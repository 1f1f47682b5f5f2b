// Package portalrepo keeps the institution's reminder history, support inbox
// and fee structure in memory.
package portalrepo

import (
	"context"
	"sync"

	"github.com/go-petr/edupay/internal/domain"
)

// Reminders is the reminder history.
type Reminders struct {
	mu      sync.RWMutex
	entries []domain.Reminder
	max     int
}

// NewReminders creates a history that keeps the max newest reminders.
// A max below 1 keeps every reminder.
func NewReminders(max int) *Reminders {
	return &Reminders{max: max}
}

// Add appends r to the history.
func (r *Reminders) Add(ctx context.Context, rem domain.Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, rem)
	if r.max > 0 && len(r.entries) > r.max {
		r.entries = append([]domain.Reminder(nil), r.entries[len(r.entries)-r.max:]...)
	}

	return nil
}

// Recent returns at most n reminders, newest first.
func (r *Reminders) Recent(ctx context.Context, n int) ([]domain.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Reminder{}

	for i := len(r.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, r.entries[i])
	}

	return result, nil
}
