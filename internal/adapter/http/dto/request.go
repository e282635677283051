package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// CreateAccountRequest represents a request to create an account. ID is
// optional; a supplied id that already exists is rejected.
type CreateAccountRequest struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Direction string `json:"direction"`
}

// ToUseCaseInput converts to use case input. Direction is passed through
// verbatim; the use case rejects anything but the two legal literals.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		ID:        r.ID,
		Name:      r.Name,
		Direction: domain.Direction(r.Direction),
	}
}

// EntryRequest represents a single entry in a posted transaction. Amount is
// decoded as an exact decimal so fractional or overflowing JSON numbers are
// rejected at the boundary instead of being silently truncated.
type EntryRequest struct {
	AccountID string          `json:"account_id"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
}

// PostTransactionRequest represents a request to post a transaction.
type PostTransactionRequest struct {
	ID      string         `json:"id,omitempty"`
	Entries []EntryRequest `json:"entries"`
}

// ToUseCaseInput converts to use case input, rejecting amounts that are not
// whole numbers of minor units or do not fit a signed 64-bit integer.
func (r *PostTransactionRequest) ToUseCaseInput() (usecase.PostTransactionInput, error) {
	entries := make([]domain.Entry, len(r.Entries))

	for i, e := range r.Entries {
		if !e.Amount.IsInteger() {
			return usecase.PostTransactionInput{}, fmt.Errorf(
				"%w: entry %d amount must be a whole number of minor units", domain.ErrInvalidTransaction, i)
		}

		big := e.Amount.BigInt()
		if !big.IsInt64() {
			return usecase.PostTransactionInput{}, fmt.Errorf(
				"%w: entry %d amount out of range", domain.ErrInvalidTransaction, i)
		}

		entries[i] = domain.Entry{
			AccountID: e.AccountID,
			Direction: domain.Direction(e.Direction),
			Amount:    big.Int64(),
		}
	}

	return usecase.PostTransactionInput{
		TransactionID: r.ID,
		Entries:       entries,
	}, nil
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
