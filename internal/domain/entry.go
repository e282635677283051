package domain

// Entry is one line of a transaction: an amount posted to one account on one
// side. Entries are immutable and exist only inside a transaction.
type Entry struct {
	AccountID string
	Direction Direction
	Amount    int64
}

// SignedAmount returns the balance delta this entry contributes: credits add,
// debits subtract. The sign does not depend on the account's direction.
func (e Entry) SignedAmount() int64 {
	if e.Direction == DirectionDebit {
		return -e.Amount
	}

	return e.Amount
}
