package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/ledgercore/internal/domain"
)

// DefaultAccountName is used when an account is created without a name.
const DefaultAccountName = "New Account"

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account. ID is optional;
// when supplied it must not collide with an existing account.
type CreateAccountInput struct {
	ID        string
	Name      string
	Direction domain.Direction
}

// CreateAccount creates a new account with a zero balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if !input.Direction.Valid() {
		return nil, domain.ErrInvalidDirection
	}

	name := input.Name
	if name == "" {
		name = DefaultAccountName
	}

	id := input.ID
	if id == "" {
		id = uc.idGen.Generate()
	} else {
		_, err := uc.accountRepo.GetByID(ctx, id)
		if err == nil {
			return nil, domain.ErrDuplicateAccount
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        id,
		Name:      name,
		Direction: input.Direction,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.accountRepo.List(ctx, input.Limit, input.Offset)
}
