package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bafa2024/complaint-hub-beta/internal/domain"
)

// LedgerRepository is the sole writer of brand balances. ApplyTransaction
// commits the balance update and the transaction append as one unit; a
// failure leaves neither visible.
type LedgerRepository interface {
	ApplyTransaction(ctx context.Context, txn *domain.CreditTransaction) error
	Balance(ctx context.Context, brandID string) (decimal.Decimal, error)
	ListByBrand(ctx context.Context, brandID string, limit, offset int) ([]domain.CreditTransaction, error)
}

type ledgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository returns a Postgres-backed implementation.
func NewLedgerRepository(pool *pgxpool.Pool) LedgerRepository {
	return &ledgerRepository{pool: pool}
}

func (r *ledgerRepository) ApplyTransaction(ctx context.Context, txn *domain.CreditTransaction) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx,
		`UPDATE brands SET credit_balance=$1, credits_updated_at=NOW(), updated_at=NOW() WHERE id=$2`,
		txn.BalanceAfter, txn.BrandID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO credit_transactions (brand_id, amount, type, ticket_id, description, balance_after)
         VALUES ($1,$2,$3,$4,$5,$6)
         RETURNING id, created_at`,
		txn.BrandID,
		txn.Amount,
		txn.Type,
		txn.TicketID,
		txn.Description,
		txn.BalanceAfter,
	).Scan(&txn.ID, &txn.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ledgerRepository) Balance(ctx context.Context, brandID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT credit_balance FROM brands WHERE id=$1`, brandID).Scan(&balance)
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *ledgerRepository) ListByBrand(ctx context.Context, brandID string, limit, offset int) ([]domain.CreditTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, brand_id, amount, type, ticket_id, description, balance_after, created_at
        FROM credit_transactions WHERE brand_id=$1
        ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, brandID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CreditTransaction
	for rows.Next() {
		var txn domain.CreditTransaction
		if err := rows.Scan(
			&txn.ID,
			&txn.BrandID,
			&txn.Amount,
			&txn.Type,
			&txn.TicketID,
			&txn.Description,
			&txn.BalanceAfter,
			&txn.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, txn)
	}
	return result, rows.Err()
}
