package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Store is a read-through cache for listing responses. Values are stored as
// JSON so the memory and Redis backends behave identically. Instances are
// injected where needed; there is no package-level singleton.
type Store interface {
	// Get unmarshals the cached value into target. The bool reports a hit.
	Get(ctx context.Context, key string, target any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix drops every key with the given prefix. Used to
	// invalidate all cached pages of a listing after a write.
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type memoryItem struct {
	data       []byte
	expiration int64
}

// Memory is an in-process TTL cache. Expired items are swept every cleanup
// interval; reads also check expiry so a stale hit is impossible in between.
type Memory struct {
	items map[string]memoryItem
	mu    sync.RWMutex
	ttl   time.Duration
}

// NewMemory builds a memory cache with the given default TTL and starts the
// background sweeper.
func NewMemory(defaultTTL time.Duration) *Memory {
	m := &Memory{
		items: make(map[string]memoryItem),
		ttl:   defaultTTL,
	}
	go m.cleanupExpired()
	return m
}

func (m *Memory) Get(_ context.Context, key string, target any) (bool, error) {
	m.mu.RLock()
	item, found := m.items[key]
	m.mu.RUnlock()

	if !found || time.Now().UnixNano() > item.expiration {
		return false, nil
	}
	if err := json.Unmarshal(item.data, target); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = m.ttl
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = memoryItem{
		data:       data,
		expiration: time.Now().Add(ttl).UnixNano(),
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) DeleteByPrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}

// Size returns the number of cached entries, expired or not.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now().UnixNano()
		m.mu.Lock()
		for key, item := range m.items {
			if now > item.expiration {
				delete(m.items, key)
			}
		}
		m.mu.Unlock()
	}
}
