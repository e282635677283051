package domain_test

import (
	"errors"
	"testing"

	"github.com/iho/ledgercore/internal/domain"
)

func TestValidateEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.Entry
		wantErr error
	}{
		{
			name: "balanced pair",
			entries: []domain.Entry{
				{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: 100},
				{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: 100},
			},
		},
		{
			name: "balanced split across three accounts",
			entries: []domain.Entry{
				{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: 100},
				{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: 60},
				{AccountID: "acc-3", Direction: domain.DirectionCredit, Amount: 40},
			},
		},
		{
			name:    "empty entry set",
			entries: nil,
			wantErr: domain.ErrTooFewEntries,
		},
		{
			name: "single entry cannot balance",
			entries: []domain.Entry{
				{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: 0},
			},
			wantErr: domain.ErrTooFewEntries,
		},
		{
			name: "negative amount",
			entries: []domain.Entry{
				{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: -5},
				{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: -5},
			},
			wantErr: domain.ErrNegativeAmount,
		},
		{
			name: "bad direction literal",
			entries: []domain.Entry{
				{AccountID: "acc-1", Direction: "withdraw", Amount: 100},
				{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: 100},
			},
			wantErr: domain.ErrInvalidDirection,
		},
		{
			name: "unbalanced sum",
			entries: []domain.Entry{
				{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: 60},
				{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: 50},
			},
			wantErr: domain.ErrUnbalancedEntries,
		},
		{
			name: "all-zero transaction is accepted",
			entries: []domain.Entry{
				{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: 0},
				{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateEntries(tt.entries)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if !errors.Is(err, domain.ErrInvalidTransaction) {
				t.Fatalf("expected %v to wrap ErrInvalidTransaction", err)
			}
		})
	}
}

func TestValidateEntriesFirstFailureWins(t *testing.T) {
	// Both too few entries and a negative amount; the entry-count check runs first.
	err := domain.ValidateEntries([]domain.Entry{
		{AccountID: "acc-1", Direction: "bogus", Amount: -1},
	})

	if !errors.Is(err, domain.ErrTooFewEntries) {
		t.Fatalf("expected ErrTooFewEntries, got %v", err)
	}
}
