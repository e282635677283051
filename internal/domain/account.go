package domain

import "time"

// Direction is the side of the ledger an account or entry belongs to.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Valid reports whether d is one of the two legal direction literals.
func (d Direction) Valid() bool {
	return d == DirectionDebit || d == DirectionCredit
}

// ParseDirection parses a direction literal.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", ErrInvalidDirection
	}

	return d, nil
}

// Account represents a balance-holding record with a fixed debit/credit polarity.
//
// Balance is stored in the smallest currency unit with credits positive and
// debits negative, independent of the account's own direction. Direction only
// determines which side the balance is reported from, see NormalBalance.
type Account struct {
	ID        string
	Name      string
	Direction Direction
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalBalance returns the balance as seen from the account's natural side:
// unchanged for credit-normal accounts, negated for debit-normal ones.
func (a *Account) NormalBalance() int64 {
	if a.Direction == DirectionDebit {
		return -a.Balance
	}

	return a.Balance
}
