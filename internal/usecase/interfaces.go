package usecase

import (
	"context"
	"time"

	"github.com/iho/ledgercore/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByIDsForUpdate loads the given accounts under exclusive locks held
	// until the transaction commits or rolls back. Implementations must
	// acquire the locks in ascending id order regardless of the order of ids,
	// and must honor ctx cancellation while waiting. Missing ids are simply
	// absent from the result.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// UpdateBalance stages the new balance for an account locked by tx. The
	// write becomes visible only when tx commits.
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance int64, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for committed transactions.
type TransactionRepository interface {
	// Create stages the transaction record inside tx. Implementations return
	// domain.ErrDuplicateTransaction when the id is already committed.
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// LedgerRepository defines ledger-wide queries.
type LedgerRepository interface {
	// TotalBalance returns the signed sum of every account balance. Zero in
	// a consistent double-entry ledger.
	TotalBalance(ctx context.Context) (int64, error)
}

// Transaction is one atomic unit of work against the store. Rollback after a
// successful Commit is a no-op, so callers defer Rollback unconditionally.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager starts store transactions.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique ids for accounts and transactions.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation after transient store conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage for the HTTP surface.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update overwrites an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
