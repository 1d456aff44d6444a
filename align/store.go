package align

import (
	"context"
	"sync"
)

// TableStore persists weight tables keyed by block length. It is the
// engine's only contact with durable storage; implementations may be in
// process, on disk or remote.
type TableStore interface {
	// Load returns the table saved under blockLength. ok is false when
	// nothing was saved under that key.
	Load(ctx context.Context, blockLength int) (t *WeightTable, ok bool, err error)

	// Save stores t under blockLength, replacing any previous entry.
	Save(ctx context.Context, blockLength int, t *WeightTable) error

	// Contains reports whether an entry exists for blockLength.
	Contains(ctx context.Context, blockLength int) (bool, error)
}

// MemoryStore is an in-process TableStore. Tables are copied on the way in
// and out, so later in-place extension by an Engine does not leak into the
// stored entry.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[int]*WeightTable
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[int]*WeightTable)}
}

func (m *MemoryStore) Load(_ context.Context, blockLength int) (*WeightTable, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[blockLength]
	if !ok {
		return nil, false, nil
	}
	return t.Clone(), true, nil
}

func (m *MemoryStore) Save(_ context.Context, blockLength int, t *WeightTable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[blockLength] = t.Clone()
	return nil
}

func (m *MemoryStore) Contains(_ context.Context, blockLength int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tables[blockLength]
	return ok, nil
}
