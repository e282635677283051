package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// TotalBalance returns the signed sum of all account balances.
func (r *LedgerRepository) TotalBalance(ctx context.Context) (int64, error) {
	var total int64

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(balance), 0)
		FROM accounts`).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}
