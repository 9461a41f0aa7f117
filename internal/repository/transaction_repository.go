package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/promptpix/promptpix/internal/models"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *models.Transaction) (*models.Transaction, error) {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	const query = `
INSERT INTO transactions (id, user_id, plan_id, amount, credits, provider_order_id, settled)
VALUES (?, ?, ?, ?, ?, ?, 0)`
	if _, err := r.db.ExecContext(ctx, query, txn.ID, txn.UserID, txn.PlanID, txn.Amount, txn.Credits, txn.ProviderOrderID); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return txn, nil
}

func (r *TransactionRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	const query = `
SELECT id, user_id, plan_id, amount, credits, provider_order_id, settled, created_at, settled_at
FROM transactions WHERE provider_order_id = ? LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, orderID)
	var t models.Transaction
	var settled int
	var settledAt sql.NullTime
	if err := row.Scan(&t.ID, &t.UserID, &t.PlanID, &t.Amount, &t.Credits, &t.ProviderOrderID, &settled, &t.CreatedAt, &settledAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	t.Settled = settled != 0
	if settledAt.Valid {
		t.SettledAt = &settledAt.Time
	}
	return &t, nil
}

// MarkSettled flips the transaction to settled. The update is conditional
// on the unsettled state so a duplicate confirmation callback cannot
// settle (and credit) the same order twice.
func (r *TransactionRepository) MarkSettled(ctx context.Context, id string) (bool, error) {
	const query = `UPDATE transactions SET settled = 1, settled_at = NOW() WHERE id = ? AND settled = 0`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("mark settled: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("settle rows affected: %w", err)
	}
	return affected > 0, nil
}
