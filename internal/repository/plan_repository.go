package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/promptpix/promptpix/internal/models"
)

type PlanRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) ListActive(ctx context.Context) ([]models.Plan, error) {
	const query = `
SELECT id, label, amount, credits, is_active, created_at, updated_at
FROM pricing_plans
WHERE is_active = 1
ORDER BY amount ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var plan models.Plan
		var active int
		if err := rows.Scan(&plan.ID, &plan.Label, &plan.Amount, &plan.Credits, &active, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plan.IsActive = active != 0
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (r *PlanRepository) GetByID(ctx context.Context, id string) (*models.Plan, error) {
	const query = `
SELECT id, label, amount, credits, is_active, created_at, updated_at
FROM pricing_plans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	var plan models.Plan
	var active int
	if err := row.Scan(&plan.ID, &plan.Label, &plan.Amount, &plan.Credits, &active, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	plan.IsActive = active != 0
	return &plan, nil
}

// Seed inserts a plan if it does not exist yet. Existing rows keep any
// operator edits.
func (r *PlanRepository) Seed(ctx context.Context, plan models.Plan) error {
	active := 0
	if plan.IsActive {
		active = 1
	}
	const query = `
INSERT IGNORE INTO pricing_plans (id, label, amount, credits, is_active)
VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, plan.ID, plan.Label, plan.Amount, plan.Credits, active); err != nil {
		return fmt.Errorf("seed plan: %w", err)
	}
	return nil
}
