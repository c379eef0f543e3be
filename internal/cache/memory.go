package cache

import (
	"context"
	"sync"
	"time"
)

type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]Entry
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: map[string]Entry{}}
}

func (b *MemoryBackend) Load(ctx context.Context, key string) (Entry, bool, error) {
	_ = ctx
	b.mu.RLock()
	e, ok := b.items[key]
	b.mu.RUnlock()
	if !ok {
		return Entry{}, false, nil
	}
	e.Payload = clone(e.Payload)
	return e, true, nil
}

// Save ignores ttl; Store decides validity on read.
func (b *MemoryBackend) Save(ctx context.Context, e Entry, ttl time.Duration) error {
	_ = ctx
	_ = ttl
	e.Payload = clone(e.Payload)
	b.mu.Lock()
	b.items[e.Key] = e
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

func clone(p []byte) []byte {
	if len(p) == 0 {
		return nil
	}
	out := make([]byte, len(p))
	copy(out, p)
	return out
}
