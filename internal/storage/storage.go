// Package storage declares the persistence contract shared by the Postgres and
// in-memory backends, together with the sentinel errors callers match with errors.Is.
package storage

import (
	"context"
	"errors"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrAccountNumberTaken = errors.New("account number is taken")
	ErrBudgetExists       = errors.New("budget already exists")
	ErrNotConnected       = errors.New("storage is not connected")
)

// Querier is the record-level surface. Every account, transaction and budget
// lookup is scoped by owner; a record owned by someone else is ErrNotFound.
type Querier interface {
	SaveUser(ctx context.Context, user *models.User) error
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	SaveAccount(ctx context.Context, account *models.Account) error
	Accounts(ctx context.Context, ownerID uuid.UUID) ([]models.Account, error)
	Account(ctx context.Context, ownerID, id uuid.UUID) (*models.Account, error)
	// AccountForUpdate loads the account and locks it until the surrounding
	// transaction ends.
	AccountForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteAccounts(ctx context.Context, ownerID uuid.UUID) error

	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	Transactions(ctx context.Context, ownerID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error)
	Transaction(ctx context.Context, ownerID, accountID, id uuid.UUID) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, accountID, id uuid.UUID) error
	DeleteTransactions(ctx context.Context, ownerID uuid.UUID) error
	SumTransactions(ctx context.Context, ownerID, accountID uuid.UUID) (decimal.Decimal, error)

	SaveBudget(ctx context.Context, budget *models.Budget) error
	Budgets(ctx context.Context, ownerID uuid.UUID) ([]models.Budget, error)
	Budget(ctx context.Context, ownerID, id uuid.UUID) (*models.Budget, error)
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteBudgets(ctx context.Context, ownerID uuid.UUID) error
}

// Storage is the process-wide persistence handle.
type Storage interface {
	Querier
	// Atomic runs fn against a Querier whose writes are committed together
	// when fn returns nil and discarded otherwise.
	Atomic(ctx context.Context, fn func(ctx context.Context, q Querier) error) error
	Close() error
}
