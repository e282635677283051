package usecase

import "time"

const (
	// DefaultPostTimeout bounds a single post, including the wait for
	// account locks. A post that cannot acquire its locks in time is
	// abandoned with no balance changes.
	DefaultPostTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long HTTP idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
