package resultcache

import (
	"context"
	"sync"
	"time"

	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
)

type memoryEntry struct {
	result    analysis.Result
	expiresAt time.Time
}

// Memory is an in-process implementation of the result cache for tests/dev
// and for deployments without a Valkey instance.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemory constructs a cache backed by process memory.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get implements analysis.Cache.
func (m *Memory) Get(_ context.Context, key string) (analysis.Result, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return analysis.Result{}, false, nil
	}
	if hasExpired(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return analysis.Result{}, false, nil
	}
	return entry.result, true, nil
}

// Save caches the result with optional TTL.
func (m *Memory) Save(_ context.Context, key string, result analysis.Result, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{result: result, expiresAt: exp}
	m.mu.Unlock()
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ analysis.Cache = (*Memory)(nil)
