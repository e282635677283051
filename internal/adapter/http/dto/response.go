package dto

import (
	"time"

	"github.com/iho/ledgercore/internal/domain"
)

// AccountResponse represents an account in API responses. Balance is the
// signed credit-positive value; NormalBalance reports it from the account's
// natural side.
type AccountResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Direction     string    `json:"direction"`
	Balance       int64     `json:"balance"`
	NormalBalance int64     `json:"normal_balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		Direction:     string(a.Direction),
		Balance:       a.Balance,
		NormalBalance: a.NormalBalance(),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	AccountID string `json:"account_id"`
	Direction string `json:"direction"`
	Amount    int64  `json:"amount"`
}

// TransactionResponse represents a committed transaction in API responses.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Entries   []EntryResponse `json:"entries"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	entries := make([]EntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = EntryResponse{
			AccountID: e.AccountID,
			Direction: string(e.Direction),
			Amount:    e.Amount,
		}
	}

	return &TransactionResponse{
		ID:        t.ID,
		Entries:   entries,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// ConsistencyResponse reports the ledger-wide zero-sum check.
type ConsistencyResponse struct {
	Consistent bool `json:"consistent"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
