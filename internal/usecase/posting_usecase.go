package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/iho/ledgercore/internal/domain"
)

// PostingUseCase applies transactions to the ledger: it validates entries,
// locks the touched accounts in a deterministic order, applies the signed
// deltas and commits the transaction record together with the new balances.
type PostingUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	retrier     Retrier
}

// NewPostingUseCase creates a new PostingUseCase. retrier may be nil, in which
// case transient store conflicts are surfaced to the caller.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		retrier:     retrier,
	}
}

// PostTransactionInput represents a proposed transaction. TransactionID is
// optional; supplying one makes the post idempotent across retries.
type PostTransactionInput struct {
	TransactionID string
	Entries       []domain.Entry
}

// PostTransaction validates and atomically applies a transaction.
//
// When TransactionID names an already committed transaction with identical
// entries, the stored record is returned and no balance changes again. The
// same id with different entries is rejected with ErrDuplicateTransaction.
// Any failure after validation rolls back every staged balance write before
// the account locks are released.
func (uc *PostingUseCase) PostTransaction(ctx context.Context, input PostTransactionInput) (*domain.Transaction, error) {
	if input.TransactionID != "" {
		existing, err := uc.replay(ctx, input)
		if err != nil || existing != nil {
			return existing, err
		}
	}

	if err := domain.ValidateEntries(input.Entries); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	commit := func() error {
		var err error
		txn, err = uc.commitOnce(ctx, input)
		return err
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, commit)
	} else {
		err = commit()
	}

	// A concurrent post can win the race on a caller-supplied id between the
	// replay check and the insert; treat the loser like a late replay.
	if errors.Is(err, domain.ErrDuplicateTransaction) && input.TransactionID != "" {
		existing, rerr := uc.replay(ctx, input)
		if rerr != nil {
			return nil, rerr
		}
		if existing != nil {
			return existing, nil
		}
	}

	if err != nil {
		return nil, err
	}

	return txn, nil
}

// replay returns the stored transaction when the post is an exact resubmission
// of a committed one, ErrDuplicateTransaction when the id is taken by a
// different transaction, and (nil, nil) when the id is unused.
func (uc *PostingUseCase) replay(ctx context.Context, input PostTransactionInput) (*domain.Transaction, error) {
	existing, err := uc.txnRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !existing.EntriesEqual(input.Entries) {
		return nil, domain.ErrDuplicateTransaction
	}

	return existing, nil
}

func (uc *PostingUseCase) commitOnce(ctx context.Context, input PostTransactionInput) (*domain.Transaction, error) {
	// Lock accounts in ascending id order. Any two transactions sharing
	// accounts acquire their common locks in the same relative order, so
	// circular wait is impossible.
	accountIDs := uc.collectUniqueAccountIDs(input.Entries)
	sort.Strings(accountIDs)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(accountIDs) {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	deltas := make(map[string]int64, len(accountIDs))
	for _, e := range input.Entries {
		deltas[e.AccountID] += e.SignedAmount()
	}

	now := time.Now().UTC()

	txnID := input.TransactionID
	if txnID == "" {
		txnID = uc.idGen.Generate()
	}

	txn := &domain.Transaction{
		ID:        txnID,
		Entries:   append([]domain.Entry(nil), input.Entries...),
		Status:    domain.StatusCommitted,
		CreatedAt: now,
	}

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	for _, id := range accountIDs {
		account := accountMap[id]
		if err := uc.accountRepo.UpdateBalance(ctx, tx, id, account.Balance+deltas[id], now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransaction retrieves a committed transaction by ID.
func (uc *PostingUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id)
}

// ListTransactionsByAccountInput represents input for listing transactions.
type ListTransactionsByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactionsByAccount lists committed transactions touching an account.
func (uc *PostingUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.txnRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

func (uc *PostingUseCase) collectUniqueAccountIDs(entries []domain.Entry) []string {
	seen := make(map[string]bool, len(entries))

	var ids []string
	for _, e := range entries {
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			ids = append(ids, e.AccountID)
		}
	}

	return ids
}
