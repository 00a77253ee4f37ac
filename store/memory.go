package store

import (
	"context"
	"sync"
)

// Memory keeps collections in process memory
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, c Collection) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.items[c.Key()]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

func (m *Memory) Set(_ context.Context, c Collection, payload []byte) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	m.mu.Lock()
	m.items[c.Key()] = stored
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(_ context.Context, c Collection) error {
	m.mu.Lock()
	delete(m.items, c.Key())
	m.mu.Unlock()
	return nil
}

func (m *Memory) ClearAll(_ context.Context) error {
	m.mu.Lock()
	for _, k := range allKeys() {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}
