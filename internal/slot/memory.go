package slot

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps slot values in process memory. Values do not survive
// a restart; intended for development and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	value   string
	expires time.Time
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]memoryItem), now: time.Now}
}

func (r *MemoryRepository) Get(_ context.Context, visitorID, key string) (string, error) {
	r.mu.RLock()
	item, ok := r.items[visitorID+"/"+key]
	r.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}
	if !item.expires.IsZero() && !r.now().Before(item.expires) {
		return "", ErrNotFound
	}
	return item.value, nil
}

func (r *MemoryRepository) Set(_ context.Context, visitorID, key, value string, ttl time.Duration) error {
	item := memoryItem{value: value}
	if ttl > 0 {
		item.expires = r.now().Add(ttl)
	}
	r.mu.Lock()
	r.items[visitorID+"/"+key] = item
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, visitorID, key string) error {
	r.mu.Lock()
	delete(r.items, visitorID+"/"+key)
	r.mu.Unlock()
	return nil
}

// NewMemoryStore returns a standalone store for a single visitor.
func NewMemoryStore() Store {
	return &visitorStore{repo: NewMemoryRepository(), visitorID: "local"}
}
