package otpcache

import (
	"context"
	"sync"
	"time"
)

type clocker interface {
	Now() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Store backed by a mutex-guarded map.
//
// Expiry is evaluated lazily on Get, so no background sweep is required for
// correctness. StartJanitor can be used to bound memory growth from abandoned
// entries. Process restart clears all state, which is acceptable for
// short-lived credentials like OTP codes.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   clocker
}

// NewMemory returns an empty in-memory store using the given clock.
func NewMemory(clock clocker) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		clock:   clock,
	}
}

// Put stores value under key, replacing any previous entry and resetting the
// expiry from now.
func (m *Memory) Put(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: m.clock.Now().Add(ttl),
	}

	return nil
}

// Get returns the live value for key, evicting lazily when expired.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}

	if !m.clock.Now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return "", ErrNotFound
	}

	return entry.value, nil
}

// Evict removes any entry for key. Idempotent.
func (m *Memory) Evict(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}

// StartJanitor launches a goroutine that periodically drops expired entries
// until ctx is canceled. Purely a memory bound; correctness never depends on it.
func (m *Memory) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

func (m *Memory) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	for key, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
}
