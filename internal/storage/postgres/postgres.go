package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// DBTX is satisfied by both *sql.DB and *sql.Tx, so the same queries run
// inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db DBTX
}

// Storage is the Postgres handle. Record methods are guarded by conn, so a nil
// or closed handle answers storage.ErrNotConnected.
type Storage struct {
	db     *sql.DB
	logger *slog.Logger
	closed atomic.Bool
}

var _ storage.Storage = (*Storage)(nil)

func New(dbUrl string, logger *slog.Logger) (*Storage, error) {
	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return NewWithDB(db, logger), nil
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB, logger *slog.Logger) *Storage {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Storage{
		db:     db,
		logger: logger,
	}
}

func (s *Storage) connected() bool {
	return s != nil && s.db != nil && !s.closed.Load()
}

func (s *Storage) conn() (*queries, error) {
	if !s.connected() {
		return nil, storage.ErrNotConnected
	}
	return &queries{db: s.db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil || !s.closed.CompareAndSwap(false, true) {
		return storage.ErrNotConnected
	}
	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	if !s.connected() {
		return storage.ErrNotConnected
	}
	return s.db.PingContext(ctx)
}

func (s *Storage) Atomic(ctx context.Context, fn func(ctx context.Context, q storage.Querier) error) error {
	const op = "storage.postgres.Atomic"

	if !s.connected() {
		return storage.ErrNotConnected
	}

	return withTx(ctx, s.db, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, &queries{db: tx})
	}, s.logger.With(slog.String("op", op)))
}

// withTx commits when fn succeeds and rolls back on error or panic. Panics are rethrown.
func withTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error, log *slog.Logger) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to rollback transaction", "error", rbErr)
			}
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// constraintErrors maps unique constraints from the migrations to domain errors.
var constraintErrors = map[string]error{
	"users_email_key":                  storage.ErrEmailTaken,
	"accounts_owner_number_key":        storage.ErrAccountNumberTaken,
	"budgets_owner_category_month_key": storage.ErrBudgetExists,
}

func wrap(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		if sentinel, ok := constraintErrors[pqErr.Constraint]; ok {
			return fmt.Errorf("%s: %w", op, sentinel)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// expectOne turns an exec result that touched no rows into ErrNotFound.
func expectOne(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return nil
}
