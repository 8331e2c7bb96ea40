package store

import (
	"context"
	"fmt"
	"sync"
)

// Memory is a map-backed KV used by tests and by callers that want an
// ephemeral catalog. Fail, when set, makes every operation report
// ErrPersistenceUnavailable so failure paths can be exercised.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
	Fail  bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Put stores a copy of the value.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("%w: put %q", ErrPersistenceUnavailable, key)
	}
	m.blobs[key] = append([]byte(nil), value...)
	return nil
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return nil, false, fmt.Errorf("%w: get %q", ErrPersistenceUnavailable, key)
	}
	value, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}
