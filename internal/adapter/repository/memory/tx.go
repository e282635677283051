package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

var errTxFinished = errors.New("transaction already committed or rolled back")

// TxManager implements usecase.TransactionManager for the in-memory store.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	return &Tx{
		store:    m.store,
		balances: make(map[string]balanceWrite),
	}, nil
}

type balanceWrite struct {
	balance   int64
	updatedAt time.Time
}

// Tx is one unit of work: it tracks held account locks and staged writes.
// Nothing is visible to readers until Commit.
type Tx struct {
	store    *Store
	mu       sync.Mutex
	locked   []string
	balances map[string]balanceWrite
	txns     []*domain.Transaction
	done     bool
}

// Commit publishes all staged writes atomically and releases the locks.
// If any staged transaction id is already committed, nothing is applied.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return errTxFinished
	}

	t.store.mu.Lock()

	for _, txn := range t.txns {
		if _, exists := t.store.transactions[txn.ID]; exists {
			t.store.mu.Unlock()
			t.finish()
			return domain.ErrDuplicateTransaction
		}
	}

	for id := range t.balances {
		if _, exists := t.store.accounts[id]; !exists {
			t.store.mu.Unlock()
			t.finish()
			return domain.ErrAccountNotFound
		}
	}

	for id, w := range t.balances {
		account := t.store.accounts[id]
		account.Balance = w.balance
		account.UpdatedAt = w.updatedAt
	}

	for _, txn := range t.txns {
		t.store.transactions[txn.ID] = cloneTransaction(txn)
	}

	t.store.mu.Unlock()
	t.finish()

	return nil
}

// Rollback discards all staged writes and releases the locks. Calling it
// after Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return nil
	}

	t.finish()

	return nil
}

// finish releases held locks in reverse acquisition order. Caller holds t.mu.
func (t *Tx) finish() {
	for i := len(t.locked) - 1; i >= 0; i-- {
		t.store.locks.release(t.locked[i])
	}

	t.locked = nil
	t.balances = nil
	t.txns = nil
	t.done = true
}

func (t *Tx) addLock(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locked = append(t.locked, id)
}

func (t *Tx) holds(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, held := range t.locked {
		if held == id {
			return true
		}
	}

	return false
}

func (t *Tx) stageBalance(id string, balance int64, updatedAt time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[id] = balanceWrite{balance: balance, updatedAt: updatedAt}
}

func (t *Tx) stageTransaction(txn *domain.Transaction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.txns = append(t.txns, cloneTransaction(txn))
}
