package accounts

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceUpdate is delivered to subscribers when an account balance changes
type BalanceUpdate struct {
	AccountID uuid.UUID       `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// BalanceWatcher fans balance changes out to per-account subscribers.
// Subscribers that fall behind are skipped, never blocked on.
type BalanceWatcher struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan BalanceUpdate]struct{}
}

// NewBalanceWatcher creates a new balance watcher
func NewBalanceWatcher() *BalanceWatcher {
	return &BalanceWatcher{
		subs: make(map[uuid.UUID]map[chan BalanceUpdate]struct{}),
	}
}

// Subscribe registers a listener for the account. The returned channel is
// buffered; callers must Unsubscribe with the same channel when done.
func (w *BalanceWatcher) Subscribe(accountID uuid.UUID) chan BalanceUpdate {
	ch := make(chan BalanceUpdate, 8)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.subs[accountID] == nil {
		w.subs[accountID] = make(map[chan BalanceUpdate]struct{})
	}
	w.subs[accountID][ch] = struct{}{}

	return ch
}

// Unsubscribe removes the listener and closes its channel
func (w *BalanceWatcher) Unsubscribe(accountID uuid.UUID, ch chan BalanceUpdate) {
	w.mu.Lock()
	defer w.mu.Unlock()

	listeners, ok := w.subs[accountID]
	if !ok {
		return
	}
	if _, ok := listeners[ch]; !ok {
		return
	}

	delete(listeners, ch)
	if len(listeners) == 0 {
		delete(w.subs, accountID)
	}
	close(ch)
}

// Notify delivers the new balance to every subscriber of the account
func (w *BalanceWatcher) Notify(accountID uuid.UUID, balance decimal.Decimal) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	update := BalanceUpdate{AccountID: accountID, Balance: balance}
	for ch := range w.subs[accountID] {
		select {
		case ch <- update:
		default:
		}
	}
}
