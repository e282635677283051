package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iho/ledgercore/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *AccountRepository, *TransactionRepository, *TxManager) {
	t.Helper()

	store := NewStore()
	return store, NewAccountRepository(store), NewTransactionRepository(store), NewTxManager(store)
}

func seedAccount(t *testing.T, repo *AccountRepository, id string, balance int64) {
	t.Helper()

	err := repo.Create(context.Background(), &domain.Account{
		ID:        id,
		Name:      id,
		Direction: domain.DirectionCredit,
		Balance:   balance,
	})
	require.NoError(t, err)
}

func TestAccountRepository_CreateDuplicate(t *testing.T) {
	_, accounts, _, _ := newTestStore(t)
	seedAccount(t, accounts, "a", 0)

	err := accounts.Create(context.Background(), &domain.Account{ID: "a"})
	require.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestAccountRepository_GetByIDsForUpdate_MissingAccountsAbsent(t *testing.T) {
	_, accounts, _, txm := newTestStore(t)
	seedAccount(t, accounts, "a", 0)

	tx, err := txm.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback(context.Background())

	got, err := accounts.GetByIDsForUpdate(context.Background(), tx, []string{"a", "ghost"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].ID)
}

func TestAccountRepository_UpdateBalanceRequiresLock(t *testing.T) {
	_, accounts, _, txm := newTestStore(t)
	seedAccount(t, accounts, "a", 0)

	tx, err := txm.Begin(context.Background())
	require.NoError(t, err)
	defer tx.Rollback(context.Background())

	err = accounts.UpdateBalance(context.Background(), tx, "a", 10, time.Now())
	require.Error(t, err)
}

func TestLockTable_AcquireRespectsContext(t *testing.T) {
	_, accounts, _, txm := newTestStore(t)
	seedAccount(t, accounts, "a", 0)

	holder, err := txm.Begin(context.Background())
	require.NoError(t, err)

	_, err = accounts.GetByIDsForUpdate(context.Background(), holder, []string{"a"})
	require.NoError(t, err)

	waiter, err := txm.Begin(context.Background())
	require.NoError(t, err)
	defer waiter.Rollback(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = accounts.GetByIDsForUpdate(ctx, waiter, []string{"a"})
	require.ErrorIs(t, err, domain.ErrLockTimeout)

	// Releasing the holder lets a fresh attempt through.
	require.NoError(t, holder.Rollback(context.Background()))

	retry, err := txm.Begin(context.Background())
	require.NoError(t, err)
	defer retry.Rollback(context.Background())

	_, err = accounts.GetByIDsForUpdate(context.Background(), retry, []string{"a"})
	require.NoError(t, err)
}

func TestTx_CommitPublishesAtomically(t *testing.T) {
	_, accounts, txns, txm := newTestStore(t)
	seedAccount(t, accounts, "a", 0)
	seedAccount(t, accounts, "b", 0)

	tx, err := txm.Begin(context.Background())
	require.NoError(t, err)

	_, err = accounts.GetByIDsForUpdate(context.Background(), tx, []string{"a", "b"})
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, accounts.UpdateBalance(context.Background(), tx, "a", -100, now))
	require.NoError(t, accounts.UpdateBalance(context.Background(), tx, "b", 100, now))
	require.NoError(t, txns.Create(context.Background(), tx, &domain.Transaction{
		ID:        "txn-1",
		Entries:   []domain.Entry{{AccountID: "a", Direction: domain.DirectionDebit, Amount: 100}},
		Status:    domain.StatusCommitted,
		CreatedAt: now,
	}))

	// Nothing is visible before Commit.
	a, err := accounts.GetByID(context.Background(), "a")
	require.NoError(t, err)
	require.EqualValues(t, 0, a.Balance)

	_, err = txns.GetByID(context.Background(), "txn-1")
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)

	require.NoError(t, tx.Commit(context.Background()))

	a, err = accounts.GetByID(context.Background(), "a")
	require.NoError(t, err)
	require.EqualValues(t, -100, a.Balance)

	stored, err := txns.GetByID(context.Background(), "txn-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCommitted, stored.Status)
}

func TestTx_RollbackDiscardsStagedWrites(t *testing.T) {
	_, accounts, txns, txm := newTestStore(t)
	seedAccount(t, accounts, "a", 50)

	tx, err := txm.Begin(context.Background())
	require.NoError(t, err)

	_, err = accounts.GetByIDsForUpdate(context.Background(), tx, []string{"a"})
	require.NoError(t, err)

	require.NoError(t, accounts.UpdateBalance(context.Background(), tx, "a", 999, time.Now()))
	require.NoError(t, txns.Create(context.Background(), tx, &domain.Transaction{ID: "txn-gone"}))

	require.NoError(t, tx.Rollback(context.Background()))

	a, err := accounts.GetByID(context.Background(), "a")
	require.NoError(t, err)
	require.EqualValues(t, 50, a.Balance)

	_, err = txns.GetByID(context.Background(), "txn-gone")
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)

	// Rollback after Rollback stays a no-op.
	require.NoError(t, tx.Rollback(context.Background()))
}

func TestTx_CommitRechecksDuplicateTransactionID(t *testing.T) {
	_, accounts, txns, txm := newTestStore(t)
	seedAccount(t, accounts, "a", 0)
	seedAccount(t, accounts, "b", 0)

	// Both transactions stage the same id before either commits, so the
	// advisory check at Create passes for both.
	tx1, err := txm.Begin(context.Background())
	require.NoError(t, err)
	tx2, err := txm.Begin(context.Background())
	require.NoError(t, err)

	_, err = accounts.GetByIDsForUpdate(context.Background(), tx1, []string{"a"})
	require.NoError(t, err)
	_, err = accounts.GetByIDsForUpdate(context.Background(), tx2, []string{"b"})
	require.NoError(t, err)

	require.NoError(t, txns.Create(context.Background(), tx1, &domain.Transaction{ID: "txn-dup"}))
	require.NoError(t, txns.Create(context.Background(), tx2, &domain.Transaction{ID: "txn-dup"}))

	require.NoError(t, accounts.UpdateBalance(context.Background(), tx2, "b", 123, time.Now()))

	require.NoError(t, tx1.Commit(context.Background()))
	require.ErrorIs(t, tx2.Commit(context.Background()), domain.ErrDuplicateTransaction)

	// The losing transaction applied none of its writes.
	b, err := accounts.GetByID(context.Background(), "b")
	require.NoError(t, err)
	require.EqualValues(t, 0, b.Balance)
}

func TestTransactionRepository_CreateAfterCommitIsDuplicate(t *testing.T) {
	_, _, txns, txm := newTestStore(t)

	tx1, err := txm.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, txns.Create(context.Background(), tx1, &domain.Transaction{ID: "txn-1"}))
	require.NoError(t, tx1.Commit(context.Background()))

	tx2, err := txm.Begin(context.Background())
	require.NoError(t, err)
	defer tx2.Rollback(context.Background())

	err = txns.Create(context.Background(), tx2, &domain.Transaction{ID: "txn-1"})
	require.ErrorIs(t, err, domain.ErrDuplicateTransaction)
}

func TestTransactionRepository_ListByAccountNewestFirst(t *testing.T) {
	_, _, txns, txm := newTestStore(t)

	base := time.Now().UTC()
	for i, id := range []string{"old", "mid", "new"} {
		tx, err := txm.Begin(context.Background())
		require.NoError(t, err)
		require.NoError(t, txns.Create(context.Background(), tx, &domain.Transaction{
			ID:        id,
			Entries:   []domain.Entry{{AccountID: "a", Direction: domain.DirectionDebit, Amount: 1}},
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
		require.NoError(t, tx.Commit(context.Background()))
	}

	got, err := txns.ListByAccount(context.Background(), "a", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "new", got[0].ID)
	require.Equal(t, "old", got[2].ID)

	page, err := txns.ListByAccount(context.Background(), "a", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "mid", page[0].ID)
}

func TestAccountRepository_ListPagination(t *testing.T) {
	_, accounts, _, _ := newTestStore(t)
	for _, id := range []string{"c", "a", "b"} {
		seedAccount(t, accounts, id, 0)
	}

	got, err := accounts.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "b", got[1].ID)

	rest, err := accounts.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, "c", rest[0].ID)

	empty, err := accounts.List(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestLedgerRepository_TotalBalance(t *testing.T) {
	store, accounts, _, _ := newTestStore(t)
	seedAccount(t, accounts, "a", -100)
	seedAccount(t, accounts, "b", 100)
	seedAccount(t, accounts, "c", 25)

	total, err := NewLedgerRepository(store).TotalBalance(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 25, total)
}
