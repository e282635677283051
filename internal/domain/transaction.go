package domain

import "time"

// TransactionStatus is the lifecycle state of a transaction. Rejected
// transactions are never persisted, so committed is the only stored state.
type TransactionStatus string

const (
	StatusCommitted TransactionStatus = "committed"
)

// Transaction is an atomic, zero-sum group of entries applied together.
// Once committed it is immutable.
type Transaction struct {
	ID        string
	Entries   []Entry
	Status    TransactionStatus
	CreatedAt time.Time
}

// EntriesEqual reports whether entries matches the transaction's entries
// exactly: same length, order, accounts, directions and amounts. Used to
// distinguish an idempotent replay from an id collision.
func (t *Transaction) EntriesEqual(entries []Entry) bool {
	if len(t.Entries) != len(entries) {
		return false
	}

	for i, e := range t.Entries {
		if e != entries[i] {
			return false
		}
	}

	return true
}
