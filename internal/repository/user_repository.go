package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/promptpix/promptpix/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `
SELECT id, name, email, password_hash, credit_balance, generation_count, created_at, updated_at
FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `
SELECT id, name, email, password_hash, credit_balance, generation_count, created_at, updated_at
FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreditBalance, &u.GenerationCount, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const query = `
INSERT INTO users (id, name, email, password_hash, credit_balance)
VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.CreditBalance); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// DebitCredit spends one credit and bumps the generation counter. The
// decrement is conditional on a positive balance so two concurrent
// generations cannot drive the balance negative; the boolean reports
// whether the debit was applied.
func (r *UserRepository) DebitCredit(ctx context.Context, userID string) (bool, error) {
	const query = `
UPDATE users
SET credit_balance = credit_balance - 1, generation_count = generation_count + 1, updated_at = NOW()
WHERE id = ? AND credit_balance > 0`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return false, fmt.Errorf("debit credit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("debit rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *UserRepository) AddCredits(ctx context.Context, userID string, amount int) error {
	const query = `UPDATE users SET credit_balance = credit_balance + ?, updated_at = NOW() WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, amount, userID); err != nil {
		return fmt.Errorf("add credits: %w", err)
	}
	return nil
}
