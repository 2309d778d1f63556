package session

import (
	"context"
	"sync"
	"time"
)

// sweepEvery is how often Save drops expired entries.
const sweepEvery = time.Minute

// MemoryStore is the in-process Store used when Redis is unavailable and in
// tests. Sessions do not survive a restart or span replicas. Expired entries
// are swept periodically from Save.
type MemoryStore struct {
	mu        sync.Mutex
	items     map[string]memoryItem
	now       func() time.Time
	nextSweep time.Time
}

type memoryItem struct {
	sess      Session
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	if m.now().After(it.expiresAt) {
		delete(m.items, id)
		return nil, nil
	}
	sess := it.sess
	sess.Flash = Flash{
		Success: append([]string(nil), it.sess.Flash.Success...),
		Error:   append([]string(nil), it.sess.Flash.Error...),
	}
	return &sess, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if !now.Before(m.nextSweep) {
		for id, it := range m.items {
			if now.After(it.expiresAt) {
				delete(m.items, id)
			}
		}
		m.nextSweep = now.Add(sweepEvery)
	}
	m.items[s.ID] = memoryItem{sess: *s, expiresAt: now.Add(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
