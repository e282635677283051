package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/iho/ledgercore/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"invalid transaction", domain.ErrUnbalancedEntries, http.StatusBadRequest},
		{"too few entries", domain.ErrTooFewEntries, http.StatusBadRequest},
		{"duplicate account", domain.ErrDuplicateAccount, http.StatusConflict},
		{"duplicate transaction", domain.ErrDuplicateTransaction, http.StatusConflict},
		{"lock timeout", domain.ErrLockTimeout, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestRejectionReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrTooFewEntries, "too_few_entries"},
		{domain.ErrNegativeAmount, "negative_amount"},
		{domain.ErrInvalidDirection, "invalid_direction"},
		{domain.ErrUnbalancedEntries, "unbalanced"},
		{domain.ErrAccountNotFound, "account_not_found"},
		{domain.ErrDuplicateTransaction, "duplicate_id"},
		{domain.ErrLockTimeout, "lock_timeout"},
		{errors.New("boom"), "store_error"},
	}

	for _, tt := range tests {
		if got := rejectionReason(tt.err); got != tt.want {
			t.Errorf("rejectionReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
