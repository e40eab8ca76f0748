package postgres

import (
	"context"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/google/uuid"
)

const accountColumns = `id, owner_id, name, type, number, institution, currency, balance, opening_balance, active, created_at, updated_at`

func (q *queries) SaveAccount(ctx context.Context, account *models.Account) error {
	const op = "storage.postgres.SaveAccount"

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		account.ID,
		account.OwnerID,
		account.Name,
		account.Type,
		account.Number,
		account.Institution,
		account.Currency,
		account.Balance,
		account.OpeningBalance,
		account.Active,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return wrap(op, err)
	}

	return nil
}

func (q *queries) Accounts(ctx context.Context, ownerID uuid.UUID) ([]models.Account, error) {
	const op = "storage.postgres.Accounts"

	rows, err := q.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE owner_id = $1 ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	return accounts, nil
}

func (q *queries) Account(ctx context.Context, ownerID, id uuid.UUID) (*models.Account, error) {
	const op = "storage.postgres.Account"

	row := q.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 AND owner_id = $2`, id, ownerID)

	account, err := scanAccount(row)
	if err != nil {
		return nil, wrap(op, err)
	}

	return account, nil
}

func (q *queries) AccountForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*models.Account, error) {
	const op = "storage.postgres.AccountForUpdate"

	row := q.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 AND owner_id = $2 FOR UPDATE`, id, ownerID)

	account, err := scanAccount(row)
	if err != nil {
		return nil, wrap(op, err)
	}

	return account, nil
}

func (q *queries) UpdateAccount(ctx context.Context, account *models.Account) error {
	const op = "storage.postgres.UpdateAccount"

	res, err := q.db.ExecContext(ctx,
		`UPDATE accounts
		 SET name = $3, type = $4, number = $5, currency = $6, balance = $7, opening_balance = $8,
		     active = $9, updated_at = $10
		 WHERE id = $1 AND owner_id = $2`,
		account.ID,
		account.OwnerID,
		account.Name,
		account.Type,
		account.Number,
		account.Currency,
		account.Balance,
		account.OpeningBalance,
		account.Active,
		account.UpdatedAt,
	)
	if err != nil {
		return wrap(op, err)
	}

	return expectOne(op, res)
}

func (q *queries) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	const op = "storage.postgres.DeleteAccount"

	res, err := q.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return wrap(op, err)
	}

	return expectOne(op, res)
}

func (q *queries) DeleteAccounts(ctx context.Context, ownerID uuid.UUID) error {
	const op = "storage.postgres.DeleteAccounts"

	if _, err := q.db.ExecContext(ctx, `DELETE FROM accounts WHERE owner_id = $1`, ownerID); err != nil {
		return wrap(op, err)
	}

	return nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var account models.Account
	if err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.Name,
		&account.Type,
		&account.Number,
		&account.Institution,
		&account.Currency,
		&account.Balance,
		&account.OpeningBalance,
		&account.Active,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
