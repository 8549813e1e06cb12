package token

import (
	"context"
	"sync"
)

// Record is the persisted token pair plus the expiry timestamps decoded from
// each token at store time. Expiries are absolute epoch milliseconds.
type Record struct {
	AccessToken   string
	RefreshToken  string
	AccessExpiry  int64
	RefreshExpiry int64
}

// complete reports whether the record holds a full pair. Anything less is
// treated as "no tokens" by the store.
func (r Record) complete() bool {
	return r.AccessToken != "" && r.RefreshToken != "" && r.AccessExpiry > 0 && r.RefreshExpiry > 0
}

// Storage persists a [Record]. Save and Clear must be atomic with respect to
// Load: a reader must never observe a half-written pair.
type Storage interface {
	Load(ctx context.Context) (Record, bool, error)
	Save(ctx context.Context, rec Record) error
	Clear(ctx context.Context) error
}

// MemoryStorage is an in-process [Storage]. Safe for concurrent use.
type MemoryStorage struct {
	mu      sync.RWMutex
	rec     Record
	present bool
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the stored record and whether one is present. It never fails.
func (m *MemoryStorage) Load(context.Context) (Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rec, m.present, nil
}

// Save replaces the stored record wholesale.
func (m *MemoryStorage) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = rec
	m.present = true
	return nil
}

// Clear removes the stored record. It never fails and is idempotent.
func (m *MemoryStorage) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = Record{}
	m.present = false
	return nil
}
