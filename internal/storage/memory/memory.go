// Package memory is a process-local storage backend used for development and tests.
// It enforces the same uniqueness and cascade rules as the Postgres schema.
package memory

import (
	"context"
	"sync"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Storage struct {
	mu     sync.Mutex
	closed bool
	state  *state
}

var _ storage.Storage = (*Storage)(nil)

func New() *Storage {
	return &Storage{state: newState()}
}

func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrNotConnected
	}
	s.closed = true
	return nil
}

// Atomic runs fn against a private copy of the data and publishes it only when fn
// succeeds. Atomic units are serialised.
func (s *Storage) Atomic(ctx context.Context, fn func(ctx context.Context, q storage.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrNotConnected
	}

	work := s.state.clone()
	if err := fn(ctx, work); err != nil {
		return err
	}
	s.state = work

	return nil
}

func (s *Storage) do(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return storage.ErrNotConnected
	}
	return fn(s.state)
}

func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	return s.do(func(st *state) error { return st.SaveUser(ctx, user) })
}

func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (user *models.User, err error) {
	err = s.do(func(st *state) error { user, err = st.UserByID(ctx, id); return err })
	return user, err
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (user *models.User, err error) {
	err = s.do(func(st *state) error { user, err = st.UserByEmail(ctx, email); return err })
	return user, err
}

func (s *Storage) UpdateUser(ctx context.Context, user *models.User) error {
	return s.do(func(st *state) error { return st.UpdateUser(ctx, user) })
}

func (s *Storage) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.do(func(st *state) error { return st.DeleteUser(ctx, id) })
}

func (s *Storage) SaveAccount(ctx context.Context, account *models.Account) error {
	return s.do(func(st *state) error { return st.SaveAccount(ctx, account) })
}

func (s *Storage) Accounts(ctx context.Context, ownerID uuid.UUID) (accounts []models.Account, err error) {
	err = s.do(func(st *state) error { accounts, err = st.Accounts(ctx, ownerID); return err })
	return accounts, err
}

func (s *Storage) Account(ctx context.Context, ownerID, id uuid.UUID) (account *models.Account, err error) {
	err = s.do(func(st *state) error { account, err = st.Account(ctx, ownerID, id); return err })
	return account, err
}

func (s *Storage) AccountForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*models.Account, error) {
	return s.Account(ctx, ownerID, id)
}

func (s *Storage) UpdateAccount(ctx context.Context, account *models.Account) error {
	return s.do(func(st *state) error { return st.UpdateAccount(ctx, account) })
}

func (s *Storage) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.do(func(st *state) error { return st.DeleteAccount(ctx, ownerID, id) })
}

func (s *Storage) DeleteAccounts(ctx context.Context, ownerID uuid.UUID) error {
	return s.do(func(st *state) error { return st.DeleteAccounts(ctx, ownerID) })
}

func (s *Storage) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.do(func(st *state) error { return st.SaveTransaction(ctx, tx) })
}

func (s *Storage) Transactions(ctx context.Context, ownerID uuid.UUID, filter models.TransactionFilter) (txs []models.Transaction, err error) {
	err = s.do(func(st *state) error { txs, err = st.Transactions(ctx, ownerID, filter); return err })
	return txs, err
}

func (s *Storage) Transaction(ctx context.Context, ownerID, accountID, id uuid.UUID) (tx *models.Transaction, err error) {
	err = s.do(func(st *state) error { tx, err = st.Transaction(ctx, ownerID, accountID, id); return err })
	return tx, err
}

func (s *Storage) DeleteTransaction(ctx context.Context, ownerID, accountID, id uuid.UUID) error {
	return s.do(func(st *state) error { return st.DeleteTransaction(ctx, ownerID, accountID, id) })
}

func (s *Storage) DeleteTransactions(ctx context.Context, ownerID uuid.UUID) error {
	return s.do(func(st *state) error { return st.DeleteTransactions(ctx, ownerID) })
}

func (s *Storage) SumTransactions(ctx context.Context, ownerID, accountID uuid.UUID) (sum decimal.Decimal, err error) {
	err = s.do(func(st *state) error { sum, err = st.SumTransactions(ctx, ownerID, accountID); return err })
	return sum, err
}

func (s *Storage) SaveBudget(ctx context.Context, budget *models.Budget) error {
	return s.do(func(st *state) error { return st.SaveBudget(ctx, budget) })
}

func (s *Storage) Budgets(ctx context.Context, ownerID uuid.UUID) (budgets []models.Budget, err error) {
	err = s.do(func(st *state) error { budgets, err = st.Budgets(ctx, ownerID); return err })
	return budgets, err
}

func (s *Storage) Budget(ctx context.Context, ownerID, id uuid.UUID) (budget *models.Budget, err error) {
	err = s.do(func(st *state) error { budget, err = st.Budget(ctx, ownerID, id); return err })
	return budget, err
}

func (s *Storage) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	return s.do(func(st *state) error { return st.UpdateBudget(ctx, budget) })
}

func (s *Storage) DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.do(func(st *state) error { return st.DeleteBudget(ctx, ownerID, id) })
}

func (s *Storage) DeleteBudgets(ctx context.Context, ownerID uuid.UUID) error {
	return s.do(func(st *state) error { return st.DeleteBudgets(ctx, ownerID) })
}
