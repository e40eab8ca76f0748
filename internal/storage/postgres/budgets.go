package postgres

import (
	"context"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/google/uuid"
)

const budgetColumns = `id, owner_id, category, month, limit_amount, created_at, updated_at`

func (q *queries) SaveBudget(ctx context.Context, budget *models.Budget) error {
	const op = "storage.postgres.SaveBudget"

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO budgets (`+budgetColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		budget.ID, budget.OwnerID, budget.Category, budget.Month, budget.Limit, budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return wrap(op, err)
	}

	return nil
}

func (q *queries) Budgets(ctx context.Context, ownerID uuid.UUID) ([]models.Budget, error) {
	const op = "storage.postgres.Budgets"

	rows, err := q.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE owner_id = $1 ORDER BY month DESC, category`, ownerID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	budgets := make([]models.Budget, 0)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		budgets = append(budgets, *budget)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	return budgets, nil
}

func (q *queries) Budget(ctx context.Context, ownerID, id uuid.UUID) (*models.Budget, error) {
	const op = "storage.postgres.Budget"

	row := q.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = $1 AND owner_id = $2`, id, ownerID)

	budget, err := scanBudget(row)
	if err != nil {
		return nil, wrap(op, err)
	}

	return budget, nil
}

func (q *queries) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	const op = "storage.postgres.UpdateBudget"

	res, err := q.db.ExecContext(ctx,
		`UPDATE budgets SET limit_amount = $3, updated_at = $4 WHERE id = $1 AND owner_id = $2`,
		budget.ID, budget.OwnerID, budget.Limit, budget.UpdatedAt,
	)
	if err != nil {
		return wrap(op, err)
	}

	return expectOne(op, res)
}

func (q *queries) DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error {
	const op = "storage.postgres.DeleteBudget"

	res, err := q.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return wrap(op, err)
	}

	return expectOne(op, res)
}

func (q *queries) DeleteBudgets(ctx context.Context, ownerID uuid.UUID) error {
	const op = "storage.postgres.DeleteBudgets"

	if _, err := q.db.ExecContext(ctx, `DELETE FROM budgets WHERE owner_id = $1`, ownerID); err != nil {
		return wrap(op, err)
	}

	return nil
}

func scanBudget(row rowScanner) (*models.Budget, error) {
	var budget models.Budget
	if err := row.Scan(
		&budget.ID,
		&budget.OwnerID,
		&budget.Category,
		&budget.Month,
		&budget.Limit,
		&budget.CreatedAt,
		&budget.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &budget, nil
}
