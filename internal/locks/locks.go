package locks

import (
	"sync"
	"time"
)

// Table is a keyed lock table: one exclusive section per key. Bidding uses
// lot ids as keys, lot-start uses auction ids, so bids on different lots
// never contend and lot starts on the same auction always do.
type Table struct {
	mu   sync.Mutex
	sems map[string]chan struct{}
}

// NewTable creates an empty lock table.
func NewTable() *Table {
	return &Table{sems: make(map[string]chan struct{})}
}

func (t *Table) sem(key string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch, ok := t.sems[key]
	if !ok {
		ch = make(chan struct{}, 1)
		t.sems[key] = ch
	}
	return ch
}

// Acquire enters the exclusive section for key, waiting at most wait.
// It reports whether the section was entered; on false the caller holds
// nothing and must not call Release.
func (t *Table) Acquire(key string, wait time.Duration) bool {
	ch := t.sem(key)

	select {
	case ch <- struct{}{}:
		return true
	default:
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case ch <- struct{}{}:
		return true
	case <-timer.C:
		return false
	}
}

// Release leaves the exclusive section for key. Calling it without a
// matching Acquire is a programming error.
func (t *Table) Release(key string) {
	<-t.sem(key)
}

// LotKey namespaces a lot's exclusion section. Bidding and lot closing
// share it so a close cannot interleave with an in-flight bid.
func LotKey(lotID string) string { return "lot:" + lotID }

// AuctionKey namespaces an auction's exclusion section, used to serialize
// lot-start attempts on the same auction.
func AuctionKey(auctionID string) string { return "auction:" + auctionID }
