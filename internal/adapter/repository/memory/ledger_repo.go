package memory

import (
	"context"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// TotalBalance returns the signed sum of all account balances.
func (r *LedgerRepository) TotalBalance(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var total int64
	for _, account := range r.store.accounts {
		total += account.Balance
	}

	return total, nil
}
