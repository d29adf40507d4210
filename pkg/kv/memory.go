package kv

import (
	"context"
	"sync"
)

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Key][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[Key][]byte{}}
}

func (m *MemoryStore) Get(ctx context.Context, key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(val), nil
}

func (m *MemoryStore) Set(ctx context.Context, key Key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = cloneBytes(value)
	return nil
}

func (m *MemoryStore) SetMany(ctx context.Context, entries map[Key][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range entries {
		m.data[key] = cloneBytes(value)
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func cloneBytes(src []byte) []byte {
	if src == nil {
		return nil
	}
	out := make([]byte, len(src))
	copy(out, src)
	return out
}
