package postgres

import (
	"context"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/google/uuid"
)

const userColumns = `id, first_name, last_name, email, phone, password_hash, status, created_at`

func (q *queries) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.SaveUser"

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, phone, password_hash, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.Phone, user.PasswordHash, user.Status, user.CreatedAt,
	)
	if err != nil {
		return wrap(op, err)
	}

	return nil
}

func (q *queries) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.postgres.UserByID"

	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		return nil, wrap(op, err)
	}

	return user, nil
}

func (q *queries) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.UserByEmail"

	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		return nil, wrap(op, err)
	}

	return user, nil
}

func (q *queries) UpdateUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.UpdateUser"

	res, err := q.db.ExecContext(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, email = $4, phone = $5, password_hash = $6, status = $7
		 WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, user.Email, user.Phone, user.PasswordHash, user.Status,
	)
	if err != nil {
		return wrap(op, err)
	}

	return expectOne(op, res)
}

func (q *queries) DeleteUser(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.DeleteUser"

	res, err := q.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrap(op, err)
	}

	return expectOne(op, res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Status,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
