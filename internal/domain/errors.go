package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransaction is the base error for every structural or arithmetic
// rejection of a proposed transaction. The wrapped variants identify the
// first check that failed; all of them satisfy
// errors.Is(err, ErrInvalidTransaction).
var ErrInvalidTransaction = errors.New("invalid transaction")

var (
	ErrTooFewEntries     = fmt.Errorf("%w: at least two entries required", ErrInvalidTransaction)
	ErrNegativeAmount    = fmt.Errorf("%w: entry amount must not be negative", ErrInvalidTransaction)
	ErrInvalidDirection  = fmt.Errorf("%w: direction must be %q or %q", ErrInvalidTransaction, DirectionDebit, DirectionCredit)
	ErrUnbalancedEntries = fmt.Errorf("%w: entries do not sum to zero", ErrInvalidTransaction)
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrDuplicateAccount     = errors.New("account id already exists")
	ErrDuplicateTransaction = errors.New("transaction id already committed with different entries")

	// ErrLockTimeout is returned when a caller gives up waiting for account
	// locks. No balance change has happened when it is returned, so the
	// whole operation is safe to retry.
	ErrLockTimeout = errors.New("timed out waiting for account locks")
)
