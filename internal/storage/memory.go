package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// memoryStore keeps snapshots in process memory. It is the default backend
// when no Redis instance is configured.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() Store {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal stored value for key %s: %w", key, err)
	}

	return true, nil
}

func (m *memoryStore) Save(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()

	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()

	return nil
}

func (m *memoryStore) Close() error {
	return nil
}
