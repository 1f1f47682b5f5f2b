package portalrepo

import (
	"context"
	"sync"

	"github.com/go-petr/edupay/internal/domain"
)

// Inbox holds the support messages sent to the admins.
type Inbox struct {
	mu       sync.Mutex
	messages []domain.SupportMessage
	nextID   int64
}

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{nextID: 1}
}

// Add stores m as unread and assigns its id.
func (in *Inbox) Add(ctx context.Context, m domain.SupportMessage) (domain.SupportMessage, error) {
	if err := ctx.Err(); err != nil {
		return domain.SupportMessage{}, err
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	m.ID = in.nextID
	m.Status = domain.SupportStatusUnread
	in.nextID++

	in.messages = append(in.messages, m)

	return m, nil
}

// ReadAll returns every message, newest first, with the status it had before
// the call. All messages are read afterwards.
func (in *Inbox) ReadAll(ctx context.Context) ([]domain.SupportMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	result := make([]domain.SupportMessage, 0, len(in.messages))

	for i := len(in.messages) - 1; i >= 0; i-- {
		result = append(result, in.messages[i])
		in.messages[i].Status = domain.SupportStatusRead
	}

	return result, nil
}
