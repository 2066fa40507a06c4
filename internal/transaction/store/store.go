// Package store holds the session ledger in memory. The ledger is
// append-only and lives exactly as long as the process: nothing is ever
// persisted, and every run starts from an empty ledger.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/lbarreto/equifinance/internal/transaction"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64
	// newest first: new entries are prepended, matching the order the
	// presentation layer lists them in
	entries []*transaction.Transaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// Append assigns the next ledger ID, stamps CreatedAt, and prepends the
// transaction. The single-session model has no concurrent writers, but the
// HTTP server reads concurrently, hence the lock.
func (s *Store) Append(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx.ID = s.nextID
	s.nextID++
	tx.CreatedAt = time.Now()

	s.entries = append([]*transaction.Transaction{tx}, s.entries...)

	return nil
}

// All returns a snapshot of the ledger, newest first. The returned slice is
// a copy; callers may reorder or filter it freely.
func (s *Store) All(_ context.Context) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*transaction.Transaction, len(s.entries))
	copy(out, s.entries)

	return out, nil
}

// Len returns the number of ledger entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
