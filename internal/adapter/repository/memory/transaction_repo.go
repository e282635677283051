package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create stages a committed transaction record inside tx. The duplicate check
// here is advisory; Commit re-checks under the store lock so a racing
// transaction with the same id can never be applied twice.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	memTx, ok := tx.(*Tx)
	if !ok {
		return fmt.Errorf("memory: unexpected transaction type %T", tx)
	}

	r.store.mu.RLock()
	_, exists := r.store.transactions[txn.ID]
	r.store.mu.RUnlock()

	if exists {
		return domain.ErrDuplicateTransaction
	}

	memTx.stageTransaction(txn)

	return nil
}

// GetByID retrieves a committed transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txn, ok := r.store.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}

	return cloneTransaction(txn), nil
}

// ListByAccount lists committed transactions with at least one entry touching
// the account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	r.store.mu.RLock()

	var matched []*domain.Transaction
	for _, txn := range r.store.transactions {
		for _, e := range txn.Entries {
			if e.AccountID == accountID {
				matched = append(matched, cloneTransaction(txn))
				break
			}
		}
	}

	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return []*domain.Transaction{}, nil
	}

	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[offset:end], nil
}
