// Package memory implements the repository interfaces against an in-process
// store. Exclusive per-account locks are acquired in ascending id order and
// every write is staged on the transaction, so commits publish the
// transaction record and all balance changes together or not at all.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/ledgercore/internal/domain"
)

// Store holds all ledger state for the in-memory backend.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]*domain.Account
	transactions map[string]*domain.Transaction
	locks        *lockTable
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]*domain.Account),
		transactions: make(map[string]*domain.Transaction),
		locks:        newLockTable(),
	}
}

// lockTable hands out one exclusive lock per account id. Locks are modeled as
// buffered channels so acquisition can be abandoned when the context ends.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]chan struct{})}
}

func (t *lockTable) lock(id string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch, ok := t.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		t.locks[id] = ch
	}

	return ch
}

// acquire blocks until the lock for id is held or ctx ends. A caller that
// gives up has changed nothing and may retry the whole operation.
func (t *lockTable) acquire(ctx context.Context, id string) error {
	select {
	case t.lock(id) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: account %s: %v", domain.ErrLockTimeout, id, ctx.Err())
	}
}

func (t *lockTable) release(id string) {
	<-t.lock(id)
}

func cloneAccount(a *domain.Account) *domain.Account {
	clone := *a
	return &clone
}

func cloneTransaction(t *domain.Transaction) *domain.Transaction {
	clone := *t
	clone.Entries = append([]domain.Entry(nil), t.Entries...)
	return &clone
}
