package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Cache. Expired entries are dropped lazily on read,
// so memory use is bounded by the live key set plus not-yet-reread expirations.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	now func() time.Time
}

// NewMemory creates an in-memory cache
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	ck := compositeKey(namespace, key)

	m.mu.RLock()
	entry, ok := m.entries[ck]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have renewed it.
		if current, ok := m.entries[ck]; ok && m.now().After(current.expiresAt) {
			delete(m.entries, ck)
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[compositeKey(namespace, key)] = memoryEntry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, namespace, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, compositeKey(namespace, key))
	return nil
}
