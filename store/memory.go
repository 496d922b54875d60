// Package store provides an in-memory implementation of gcexec.Store,
// adapted from the teacher's in-memory run store: a single mutex-guarded
// map. Unlike the teacher's store it is read-mostly — GC records are put
// once when a gene pool is loaded and looked up many times afterwards —
// and carries none of the checkpoint/idempotency machinery a run store
// needs, since the executor only ever reads through this interface.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/kestrelgrid/gcexec"
)

// MemStore is a concurrency-safe in-memory GC store. It may be shared by
// several execution contexts; gcexec.Context itself carries no locking, so
// any locking a Store needs is entirely its own concern.
type MemStore struct {
	mu      sync.RWMutex
	records map[gcexec.Signature]*gcexec.GCRecord
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{records: make(map[gcexec.Signature]*gcexec.GCRecord)}
}

// Put registers gc under its own signature, overwriting any prior record
// with the same signature.
func (m *MemStore) Put(gc *gcexec.GCRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[gc.Signature] = gc
}

// Get implements gcexec.Store.
func (m *MemStore) Get(_ context.Context, sig gcexec.Signature) (*gcexec.GCRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[sig]
	if !ok {
		return nil, fmt.Errorf("store: no GC record for signature %s", sig)
	}
	return rec, nil
}

// Len reports how many records the store currently holds.
func (m *MemStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
