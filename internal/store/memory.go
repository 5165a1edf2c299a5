// Package store persists per-player mastery ledgers. Implementations
// satisfy progression.LedgerStore: unknown players read back as a fresh
// empty ledger, Save replaces prior state wholesale, and Delete of an
// absent ledger is not an error.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/korvus/EnchantMastery_Go/internal/progression"
)

// MemoryStore is an in-memory LedgerStore, used in tests and when the
// service runs without a database. Ledgers are cloned on the way in and
// out so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	ledgers map[string]*progression.Ledger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ledgers: make(map[string]*progression.Ledger)}
}

func (s *MemoryStore) Get(_ context.Context, playerID string) (*progression.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if l, ok := s.ledgers[playerID]; ok {
		return l.Clone(), nil
	}
	return progression.NewLedger(), nil
}

func (s *MemoryStore) Save(_ context.Context, playerID string, ledger *progression.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledgers[playerID] = ledger.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ledgers, playerID)
	return nil
}

func (s *MemoryStore) Players(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.ledgers))
	for id := range s.ledgers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
