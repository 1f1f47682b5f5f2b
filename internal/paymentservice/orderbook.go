package paymentservice

import (
	"sync"
	"time"

	"github.com/go-petr/edupay/internal/domain"
)

// OrderTTL is how long an unconfirmed order stays claimable.
const OrderTTL = 24 * time.Hour

type bookEntry struct {
	order   domain.Order
	claimed bool
}

// orderBook remembers the orders this server created until they are credited.
type orderBook struct {
	mu     sync.Mutex
	orders map[string]*bookEntry
}

func newOrderBook() *orderBook {
	return &orderBook{orders: make(map[string]*bookEntry)}
}

func bookKey(gateway, reference string) string {
	return gateway + "/" + reference
}

func (b *orderBook) put(o domain.Order, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for k, e := range b.orders {
		if !e.claimed && now.Sub(e.order.CreatedAt) > OrderTTL {
			delete(b.orders, k)
		}
	}

	b.orders[bookKey(o.Gateway, o.Reference)] = &bookEntry{order: o}
}

// claim marks the order as being confirmed by payer. Only one caller can hold a claim.
func (b *orderBook) claim(gateway, reference, payer string, now time.Time) (domain.Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.orders[bookKey(gateway, reference)]
	if !ok || e.claimed || e.order.Payer != payer || now.Sub(e.order.CreatedAt) > OrderTTL {
		return domain.Order{}, false
	}

	e.claimed = true

	return e.order, true
}

// release makes a claimed order claimable again.
func (b *orderBook) release(o domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.orders[bookKey(o.Gateway, o.Reference)]; ok {
		e.claimed = false
	}
}

// complete forgets a credited order.
func (b *orderBook) complete(o domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.orders, bookKey(o.Gateway, o.Reference))
}

func (b *orderBook) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.orders)
}
