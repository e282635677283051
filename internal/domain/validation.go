package domain

// ValidateEntries checks the structural and arithmetic validity of a proposed
// set of entries. Checks run in a fixed order and the first failure wins:
//
//  1. at least two entries (a single entry can never balance),
//  2. no negative amounts,
//  3. every direction is a legal literal,
//  4. the signed amounts sum to exactly zero.
//
// Account existence is deliberately not checked here; the applier verifies it
// under lock. A balanced all-zero transaction passes and commits as a no-op.
func ValidateEntries(entries []Entry) error {
	if len(entries) < 2 {
		return ErrTooFewEntries
	}

	for _, e := range entries {
		if e.Amount < 0 {
			return ErrNegativeAmount
		}
	}

	for _, e := range entries {
		if !e.Direction.Valid() {
			return ErrInvalidDirection
		}
	}

	var sum int64
	for _, e := range entries {
		sum += e.SignedAmount()
	}

	if sum != 0 {
		return ErrUnbalancedEntries
	}

	return nil
}
