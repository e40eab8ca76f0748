package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, owner_id, account_id, name, amount, category, type, date, created_at`

func (q *queries) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	const op = "storage.postgres.SaveTransaction"

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		tx.ID,
		tx.OwnerID,
		tx.AccountID,
		tx.Name,
		tx.Amount,
		tx.Category,
		tx.Type,
		tx.Date,
		tx.CreatedAt,
	)
	if err != nil {
		return wrap(op, err)
	}

	return nil
}

func (q *queries) Transactions(ctx context.Context, ownerID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error) {
	const op = "storage.postgres.Transactions"

	query, args := transactionsQuery(ownerID, filter)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		transactions = append(transactions, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	return transactions, nil
}

func transactionsQuery(ownerID uuid.UUID, filter models.TransactionFilter) (string, []any) {
	var sb strings.Builder
	args := []any{ownerID}

	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1`)

	cond := func(clause string, arg any) {
		args = append(args, arg)
		sb.WriteString(" AND " + clause + " $" + strconv.Itoa(len(args)))
	}

	if filter.AccountID != uuid.Nil {
		cond("account_id =", filter.AccountID)
	}
	if filter.Category != "" {
		cond("category =", filter.Category)
	}
	if !filter.From.IsZero() {
		cond("date >=", filter.From)
	}
	if !filter.To.IsZero() {
		cond("date <", filter.To)
	}

	sb.WriteString(` ORDER BY date DESC, created_at DESC`)

	return sb.String(), args
}

func (q *queries) Transaction(ctx context.Context, ownerID, accountID, id uuid.UUID) (*models.Transaction, error) {
	const op = "storage.postgres.Transaction"

	row := q.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND account_id = $2 AND owner_id = $3`,
		id, accountID, ownerID)

	tx, err := scanTransaction(row)
	if err != nil {
		return nil, wrap(op, err)
	}

	return tx, nil
}

func (q *queries) DeleteTransaction(ctx context.Context, ownerID, accountID, id uuid.UUID) error {
	const op = "storage.postgres.DeleteTransaction"

	res, err := q.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND account_id = $2 AND owner_id = $3`, id, accountID, ownerID)
	if err != nil {
		return wrap(op, err)
	}

	return expectOne(op, res)
}

func (q *queries) DeleteTransactions(ctx context.Context, ownerID uuid.UUID) error {
	const op = "storage.postgres.DeleteTransactions"

	if _, err := q.db.ExecContext(ctx, `DELETE FROM transactions WHERE owner_id = $1`, ownerID); err != nil {
		return wrap(op, err)
	}

	return nil
}

func (q *queries) SumTransactions(ctx context.Context, ownerID, accountID uuid.UUID) (decimal.Decimal, error) {
	const op = "storage.postgres.SumTransactions"

	var sum decimal.Decimal
	err := q.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE owner_id = $1 AND account_id = $2`,
		ownerID, accountID).Scan(&sum)
	if err != nil {
		return decimal.Zero, wrap(op, err)
	}

	return sum, nil
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var tx models.Transaction
	if err := row.Scan(
		&tx.ID,
		&tx.OwnerID,
		&tx.AccountID,
		&tx.Name,
		&tx.Amount,
		&tx.Category,
		&tx.Type,
		&tx.Date,
		&tx.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &tx, nil
}
