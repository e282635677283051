package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
	"github.com/iho/ledgercore/tests/testutil"
)

func TestAccountLifecycleIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	ledger := newPostgresLedger(t, db)

	created, err := ledger.CreateAccount(ctx, usecase.CreateAccountInput{
		Direction: domain.DirectionCredit,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Name != usecase.DefaultAccountName {
		t.Errorf("expected default name, got %q", created.Name)
	}

	got, err := ledger.GetAccount(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Balance != 0 {
		t.Errorf("expected zero balance, got %d", got.Balance)
	}

	// A caller-supplied id collides with itself on reuse.
	_, err = ledger.CreateAccount(ctx, usecase.CreateAccountInput{
		ID:        created.ID,
		Direction: domain.DirectionDebit,
	})
	if !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}

	accounts, err := ledger.ListAccounts(ctx, usecase.ListAccountsInput{Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("expected 1 account, got %d", len(accounts))
	}
}
