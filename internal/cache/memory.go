package cache

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultMaxEntries bounds a memory cache; the oldest-expiring entries go first.
	DefaultMaxEntries = 10000
	maxSweepInterval  = time.Minute
)

type memoryEntry struct {
	value   []byte
	expires time.Time // zero means no expiry
}

// MemoryCache is an in-process Cache guarded by a mutex. Expired entries are
// swept periodically until Close.
type MemoryCache struct {
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]memoryEntry
	now        func() time.Time
	stopSweep  chan struct{}
	stopOnce   sync.Once
}

// NewMemoryCache creates a cache whose entries live for ttl; zero keeps them
// until the cache is full.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	m := &MemoryCache{
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		entries:    make(map[string]memoryEntry),
		now:        time.Now,
		stopSweep:  make(chan struct{}),
	}
	if ttl > 0 {
		interval := ttl
		if interval > maxSweepInterval {
			interval = maxSweepInterval
		}
		go m.sweepLoop(interval)
	}
	return m
}

func (m *MemoryCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stopSweep:
			return
		}
	}
}

// sweep drops every expired entry.
func (m *MemoryCache) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
}

func (m *MemoryCache) sweepLocked() {
	now := m.now()
	for key, e := range m.entries {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.entries, key)
		}
	}
}

// evictLocked makes room for one new entry: expired entries first, then the
// entry closest to expiry.
func (m *MemoryCache) evictLocked() {
	m.sweepLocked()
	if len(m.entries) < m.maxEntries {
		return
	}
	var victim string
	var victimExpires time.Time
	first := true
	for key, e := range m.entries {
		if first || e.expires.Before(victimExpires) {
			victim, victimExpires, first = key, e.expires, false
		}
	}
	delete(m.entries, victim)
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expires.IsZero() && !m.now().Before(e.expires) {
		m.mu.Lock()
		// re-check: a concurrent Set may have refreshed the entry
		if cur, ok := m.entries[key]; ok && cur.expires.Equal(e.expires) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return append([]byte(nil), e.value...), true
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	e := memoryEntry{value: append([]byte(nil), value...)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evictLocked()
	}
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, including expired ones not yet swept.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close stops the sweeper. Safe to call more than once.
func (m *MemoryCache) Close() error {
	m.stopOnce.Do(func() { close(m.stopSweep) })
	return nil
}
