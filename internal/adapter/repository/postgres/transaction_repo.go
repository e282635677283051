package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/ledgercore/internal/domain"
	"github.com/iho/ledgercore/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts the transaction record and its entries inside tx. A primary
// key collision on the transaction id maps to ErrDuplicateTransaction so the
// applier can resolve the race between two posts reusing the same id.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, `
		INSERT INTO transactions (id, status, created_at)
		VALUES ($1, $2, $3)`,
		txn.ID, string(txn.Status), txn.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateTransaction
		}

		return err
	}

	for i, e := range txn.Entries {
		_, err = pgxTx.Exec(ctx, `
			INSERT INTO entries (transaction_id, position, account_id, direction, amount)
			VALUES ($1, $2, $3, $4, $5)`,
			txn.ID, i, e.AccountID, string(e.Direction), e.Amount,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a committed transaction with its entries in order.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	var (
		txn    domain.Transaction
		status string
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, status, created_at
		FROM transactions
		WHERE id = $1`, id).Scan(&txn.ID, &status, &txn.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Status = domain.TransactionStatus(status)

	txn.Entries, err = r.loadEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// ListByAccount lists committed transactions touching an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.status, t.created_at
		FROM transactions t
		WHERE t.id IN (SELECT DISTINCT transaction_id FROM entries WHERE account_id = $1)
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]*domain.Transaction, 0)
	for rows.Next() {
		var (
			txn    domain.Transaction
			status string
		)
		if err := rows.Scan(&txn.ID, &status, &txn.CreatedAt); err != nil {
			return nil, err
		}
		txn.Status = domain.TransactionStatus(status)
		txns = append(txns, &txn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, txn := range txns {
		txn.Entries, err = r.loadEntries(ctx, txn.ID)
		if err != nil {
			return nil, err
		}
	}

	return txns, nil
}

func (r *TransactionRepository) loadEntries(ctx context.Context, txnID string) ([]domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT account_id, direction, amount
		FROM entries
		WHERE transaction_id = $1
		ORDER BY position`, txnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var (
			e         domain.Entry
			direction string
		)
		if err := rows.Scan(&e.AccountID, &direction, &e.Amount); err != nil {
			return nil, err
		}
		e.Direction = domain.Direction(direction)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
