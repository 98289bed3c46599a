package memdb

import (
	"context"
	"slices"
	"sync"

	"github.com/hedisam/txchain/internal/ledger"
)

// RecordStore is an append-only, in-memory log of submitted records in arrival order. It stores candidates, not
// validated history: deciding which records form the chain is left to the ledger.
type RecordStore struct {
	records []ledger.Record
	mu      sync.RWMutex
}

func NewRecordStore(opts ...Option) *RecordStore {
	cfg := &config{memSize: DefaultMemSize}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	return &RecordStore{
		records: make([]ledger.Record, 0, cfg.memSize),
	}
}

// Append adds records to the end of the log.
func (s *RecordStore) Append(_ context.Context, records ...ledger.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, records...)
	return nil
}

// Records returns a snapshot of the log. Later appends are not visible through the returned slice.
func (s *RecordStore) Records(_ context.Context) ([]ledger.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.records), nil
}

// Len returns the number of stored records.
func (s *RecordStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records), nil
}
