package service

import (
	"sort"
	"sync"

	"prayerlog/internal/modules/session/domain"
)

type RecordSetListener func(records []domain.Record)

// Broadcaster keeps per-user listeners for record-set changes.
type Broadcaster struct {
	mu   sync.Mutex
	next uint64
	subs map[string]map[uint64]RecordSetListener
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: map[string]map[uint64]RecordSetListener{}}
}

func (b *Broadcaster) Add(userID string, listener RecordSetListener) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	if b.subs[userID] == nil {
		b.subs[userID] = map[uint64]RecordSetListener{}
	}
	b.subs[userID][b.next] = listener
	return b.next
}

func (b *Broadcaster) Remove(userID string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[userID], id)
	if len(b.subs[userID]) == 0 {
		delete(b.subs, userID)
	}
}

func (b *Broadcaster) Has(userID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[userID]) > 0
}

// Listeners returns a snapshot in registration order.
func (b *Broadcaster) Listeners(userID string) []RecordSetListener {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]uint64, 0, len(b.subs[userID]))
	for id := range b.subs[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]RecordSetListener, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.subs[userID][id])
	}
	return out
}
