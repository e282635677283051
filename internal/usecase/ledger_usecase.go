package usecase

import (
	"context"
	"errors"

	"github.com/iho/ledgercore/internal/domain"
)

// ErrInconsistentLedger is returned when account balances do not net to zero.
var ErrInconsistentLedger = errors.New("ledger is inconsistent: balances do not sum to zero")

// LedgerUseCase is the single entry point for external callers. It combines
// account management and transaction posting, and adds a ledger-wide
// consistency check over the zero-sum invariant.
type LedgerUseCase struct {
	accounts   *AccountUseCase
	posting    *PostingUseCase
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accounts *AccountUseCase, posting *PostingUseCase, ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		accounts:   accounts,
		posting:    posting,
		ledgerRepo: ledgerRepo,
	}
}

// CreateAccount creates a new account.
func (uc *LedgerUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	return uc.accounts.CreateAccount(ctx, input)
}

// GetAccount retrieves an account by ID.
func (uc *LedgerUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accounts.GetAccount(ctx, id)
}

// ListAccounts lists accounts with pagination.
func (uc *LedgerUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	return uc.accounts.ListAccounts(ctx, input)
}

// PostTransaction validates and atomically applies a transaction.
func (uc *LedgerUseCase) PostTransaction(ctx context.Context, input PostTransactionInput) (*domain.Transaction, error) {
	return uc.posting.PostTransaction(ctx, input)
}

// GetTransaction retrieves a committed transaction by ID.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.posting.GetTransaction(ctx, id)
}

// ListTransactionsByAccount lists committed transactions touching an account.
func (uc *LedgerUseCase) ListTransactionsByAccount(ctx context.Context, input ListTransactionsByAccountInput) ([]*domain.Transaction, error) {
	return uc.posting.ListTransactionsByAccount(ctx, input)
}

// CheckConsistency verifies that every committed transaction's entries have
// conserved money: the signed balances of all accounts must net to zero.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	total, err := uc.ledgerRepo.TotalBalance(ctx)
	if err != nil {
		return false, err
	}

	if total != 0 {
		return false, ErrInconsistentLedger
	}

	return true, nil
}
