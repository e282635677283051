package domain_test

import (
	"testing"

	"github.com/iho/ledgercore/internal/domain"
)

func TestTransactionEntriesEqual(t *testing.T) {
	base := []domain.Entry{
		{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: 100},
		{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: 100},
	}

	txn := &domain.Transaction{ID: "txn-1", Entries: base, Status: domain.StatusCommitted}

	if !txn.EntriesEqual([]domain.Entry{
		{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: 100},
		{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: 100},
	}) {
		t.Fatal("identical entries should compare equal")
	}

	if txn.EntriesEqual(base[:1]) {
		t.Fatal("shorter entry list should not compare equal")
	}

	if txn.EntriesEqual([]domain.Entry{
		{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: 100},
		{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: 100},
	}) {
		t.Fatal("reordered entries should not compare equal")
	}

	if txn.EntriesEqual([]domain.Entry{
		{AccountID: "acc-1", Direction: domain.DirectionDebit, Amount: 101},
		{AccountID: "acc-2", Direction: domain.DirectionCredit, Amount: 101},
	}) {
		t.Fatal("differing amounts should not compare equal")
	}
}
