// Package storage persists campaign state as JSON documents under a
// handful of named keys.
//
// Saves are synchronous and best-effort. Nothing is transactional across
// keys: a failure between saving the transactions and the pinned ids can
// leave the two out of step.
package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

const (
	KeyTransactions = "transactions"
	KeyPinnedIDs    = "pinnedIds"
	KeyTheme        = "theme"
	KeyTemplates    = "smsTemplates"
)

// Store reads and writes JSON-serialisable values by key. Load reports
// found=false, and leaves dst untouched, when the key was never saved.
type Store interface {
	Load(key string, dst any) (found bool, err error)
	Save(key string, value any) error
}

// MemoryStore keeps values in memory. It is used by tests and when the
// database path is ":memory:".
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (m *MemoryStore) Load(key string, dst any) (bool, error) {
	m.mu.Lock()
	data, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (m *MemoryStore) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	m.mu.Lock()
	m.entries[key] = data
	m.mu.Unlock()
	return nil
}

// Raw returns the stored JSON for key.
func (m *MemoryStore) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	return string(data), ok
}
