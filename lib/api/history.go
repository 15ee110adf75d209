package api

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"quadrafund.io/quadra/lib/observer"
	"quadrafund.io/quadra/lib/strategy"
)

// VoteHistory keeps the most recent committed vote records in memory so
// the API can answer "what just happened" without replaying the event
// log. It is a cache over the emitted events, never a second source of
// truth.
type VoteHistory struct {
	sync.Mutex

	cache *lru.Cache
	seq   uint64
	off   func()
}

func NewVoteHistory(size int) (*VoteHistory, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &VoteHistory{cache: cache}, nil
}

// Start subscribes to every committed vote. Stop releases the
// subscription.
func (h *VoteHistory) Start() {
	event := observer.NewEvent(observer.ResourceVote, observer.ConditionAll, "").String()

	onFunc := func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		vr, ok := args[0].(strategy.VoteRecord)
		if !ok {
			return
		}
		h.add(vr)
	}

	observer.VoteObserver.On(event, onFunc)
	h.off = func() {
		observer.VoteObserver.Off(event, onFunc)
	}
}

func (h *VoteHistory) Stop() {
	if h.off != nil {
		h.off()
		h.off = nil
	}
}

func (h *VoteHistory) add(vr strategy.VoteRecord) {
	h.Lock()
	defer h.Unlock()

	h.seq++
	h.cache.Add(h.seq, vr)
}

// Recent returns the cached records, oldest first.
func (h *VoteHistory) Recent() []strategy.VoteRecord {
	h.Lock()
	defer h.Unlock()

	keys := h.cache.Keys()
	records := make([]strategy.VoteRecord, 0, len(keys))
	for _, k := range keys {
		if v, ok := h.cache.Peek(k); ok {
			records = append(records, v.(strategy.VoteRecord))
		}
	}

	return records
}
