package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store used by tests and as the development
// fallback when no spreadsheet is configured. It mirrors the remote store's
// semantics: append order is preserved, Get is a scan, UpdateByID is a
// read-merge-write and NextID is a suffix scan.
type Memory struct {
	mu   sync.RWMutex
	rows map[string][]Row
	now  func() time.Time
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		rows: make(map[string][]Row),
		now:  time.Now,
	}
}

// SetClock overrides the timestamp source; tests use it for deterministic
// created_at ordering.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// List returns all rows of a collection in append order.
func (m *Memory) List(ctx context.Context, c Collection) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.rows[c.Sheet]
	out := make([]Row, 0, len(stored))
	for _, r := range stored {
		out = append(out, r.Clone())
	}
	return out, nil
}

// Get scans for the row with the given id.
func (m *Memory) Get(ctx context.Context, c Collection, id string) (Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.rows[c.Sheet] {
		if r[c.ID()] == id {
			return r.Clone(), nil
		}
	}
	return nil, NotFoundError(c, id)
}

// Append adds a row, stamping created_at/updated_at when the schema has them.
func (m *Memory) Append(ctx context.Context, c Collection, row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := row.Clone()
	ts := Timestamp(m.now())
	if c.hasColumn("created_at") && stored["created_at"] == "" {
		stored["created_at"] = ts
	}
	if c.hasColumn("updated_at") && stored["updated_at"] == "" {
		stored["updated_at"] = ts
	}
	m.rows[c.Sheet] = append(m.rows[c.Sheet], stored)
	return nil
}

// UpdateByID merges fields into the stored row and refreshes updated_at.
func (m *Memory) UpdateByID(ctx context.Context, c Collection, id string, fields Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows[c.Sheet] {
		if r[c.ID()] != id {
			continue
		}
		merged := r.Merge(fields)
		if c.hasColumn("updated_at") {
			merged["updated_at"] = Timestamp(m.now())
		}
		m.rows[c.Sheet][i] = merged
		return nil
	}
	return NotFoundError(c, id)
}

// NextID scans existing ids for the prefix and returns max+1.
func (m *Memory) NextID(ctx context.Context, c Collection, prefix string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.rows[c.Sheet]))
	for _, r := range m.rows[c.Sheet] {
		ids = append(ids, r[c.ID()])
	}
	return nextFromIDs(ids, prefix, idSequenceWidth), nil
}
