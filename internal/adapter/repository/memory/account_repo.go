package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.accounts[account.ID]; exists {
		return domain.ErrDuplicateAccount
	}

	r.store.accounts[account.ID] = cloneAccount(account)

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return cloneAccount(account), nil
}

// GetByIDsForUpdate acquires the per-account locks in ascending id order and
// returns snapshots of the accounts that exist. The locks stay held until the
// transaction commits or rolls back.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	memTx, ok := tx.(*Tx)
	if !ok {
		return nil, fmt.Errorf("memory: unexpected transaction type %T", tx)
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	for _, id := range sorted {
		if err := r.store.locks.acquire(ctx, id); err != nil {
			// Locks acquired so far are released by the caller's rollback.
			return nil, err
		}
		memTx.addLock(id)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(sorted))
	for _, id := range sorted {
		if account, exists := r.store.accounts[id]; exists {
			accounts = append(accounts, cloneAccount(account))
		}
	}

	return accounts, nil
}

// UpdateBalance stages a new balance for an account locked by tx.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	memTx, ok := tx.(*Tx)
	if !ok {
		return fmt.Errorf("memory: unexpected transaction type %T", tx)
	}

	if !memTx.holds(id) {
		return fmt.Errorf("memory: account %s is not locked by this transaction", id)
	}

	memTx.stageBalance(id, balance, updatedAt)

	return nil
}

// List lists accounts ordered by id with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make([]string, 0, len(r.store.accounts))
	for id := range r.store.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if offset >= len(ids) {
		return []*domain.Account{}, nil
	}

	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}

	accounts := make([]*domain.Account, 0, end-offset)
	for _, id := range ids[offset:end] {
		accounts = append(accounts, cloneAccount(r.store.accounts[id]))
	}

	return accounts, nil
}
