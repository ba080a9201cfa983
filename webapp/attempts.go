package webapp

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type attemptRecord struct {
	Count       int
	LastAttempt time.Time
}

// AttemptTracker counts login attempts per client IP. The map is bounded by
// a fixed-capacity LRU so a brute-force run against many spoofed addresses
// cannot grow it without limit; evicting the coldest IP resets its count,
// which is acceptable for an advisory counter used only to enrich events.
type AttemptTracker struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *attemptRecord]
}

// NewAttemptTracker builds a tracker holding at most capacity client IPs.
func NewAttemptTracker(capacity int) (*AttemptTracker, error) {
	cache, err := lru.New[string, *attemptRecord](capacity)
	if err != nil {
		return nil, err
	}
	return &AttemptTracker{cache: cache}, nil
}

// Record increments the counter for ip and returns the new count. It is
// called unconditionally before credential comparison, so the count covers
// successes and failures alike.
func (t *AttemptTracker) Record(ip string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.cache.Get(ip)
	if !ok {
		rec = &attemptRecord{}
		t.cache.Add(ip, rec)
	}
	rec.Count++
	rec.LastAttempt = time.Now()
	return rec.Count
}

// Count returns the current counter for ip without incrementing it.
func (t *AttemptTracker) Count(ip string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if rec, ok := t.cache.Peek(ip); ok {
		return rec.Count
	}
	return 0
}

// Len reports how many client IPs are currently tracked.
func (t *AttemptTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cache.Len()
}
