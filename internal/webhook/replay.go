package webhook

import (
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	// ErrReplay means a delivery ID was already accepted inside the replay window.
	ErrReplay            = errors.New("webhook delivery already processed")
	ErrMissingDeliveryID = errors.New("webhook delivery id is missing")
)

const defaultReplayEntries = 4096

// ReplayGuard remembers recent delivery IDs. Entries older than the window
// are treated as unseen; the cache size bounds memory.
type ReplayGuard struct {
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen *lru.Cache[string, time.Time]
}

// NewReplayGuard keeps up to size IDs for window. size <= 0 picks a default.
func NewReplayGuard(window time.Duration, size int) (*ReplayGuard, error) {
	if size <= 0 {
		size = defaultReplayEntries
	}
	cache, err := lru.New[string, time.Time](size)
	if err != nil {
		return nil, fmt.Errorf("create replay cache: %w", err)
	}
	return &ReplayGuard{window: window, now: time.Now, seen: cache}, nil
}

// Check records id and returns ErrReplay if it was seen within the window.
// An empty id cannot be tracked and is rejected.
func (g *ReplayGuard) Check(id string) error {
	if id == "" {
		return ErrMissingDeliveryID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if at, ok := g.seen.Get(id); ok && (g.window <= 0 || now.Sub(at) < g.window) {
		return ErrReplay
	}
	g.seen.Add(id, now)
	return nil
}

// Forget drops id so a failed delivery can be retried by the sender.
func (g *ReplayGuard) Forget(id string) {
	g.mu.Lock()
	g.seen.Remove(id)
	g.mu.Unlock()
}
