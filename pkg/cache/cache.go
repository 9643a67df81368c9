// Package cache provides the key/value cache used for weather lookups.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type Cache interface {
	// Get decodes the cached value into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type memoryEntry struct {
	content    []byte
	expiration time.Time
}

// Memory is an in-process Cache with per-entry expiry.
type Memory struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{items: make(map[string]memoryEntry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.RLock()
	entry, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if !entry.expiration.IsZero() && m.now().After(entry.expiration) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return false, nil
	}
	return true, json.Unmarshal(entry.content, dest)
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	content, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entry := memoryEntry{content: content}
	if ttl > 0 {
		entry.expiration = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}
