package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// state is the unlocked table set. Values are stored by copy so callers never
// alias what is kept here.
type state struct {
	users        map[uuid.UUID]models.User
	accounts     map[uuid.UUID]models.Account
	transactions map[uuid.UUID]models.Transaction
	budgets      map[uuid.UUID]models.Budget
}

var _ storage.Querier = (*state)(nil)

func newState() *state {
	return &state{
		users:        make(map[uuid.UUID]models.User),
		accounts:     make(map[uuid.UUID]models.Account),
		transactions: make(map[uuid.UUID]models.Transaction),
		budgets:      make(map[uuid.UUID]models.Budget),
	}
}

func (st *state) clone() *state {
	return &state{
		users:        maps.Clone(st.users),
		accounts:     maps.Clone(st.accounts),
		transactions: maps.Clone(st.transactions),
		budgets:      maps.Clone(st.budgets),
	}
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

func (st *state) SaveUser(_ context.Context, user *models.User) error {
	const op = "storage.memory.SaveUser"

	for _, u := range st.users {
		if u.Email == user.Email {
			return fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
	}
	st.users[user.ID] = *user
	return nil
}

func (st *state) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := st.users[id]
	if !ok {
		return nil, notFound("storage.memory.UserByID")
	}
	return &u, nil
}

func (st *state) UserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, notFound("storage.memory.UserByEmail")
}

func (st *state) UpdateUser(_ context.Context, user *models.User) error {
	const op = "storage.memory.UpdateUser"

	if _, ok := st.users[user.ID]; !ok {
		return notFound(op)
	}
	for id, u := range st.users {
		if id != user.ID && u.Email == user.Email {
			return fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
	}
	st.users[user.ID] = *user
	return nil
}

// DeleteUser cascades to everything the user owns.
func (st *state) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, ok := st.users[id]; !ok {
		return notFound("storage.memory.DeleteUser")
	}
	_ = st.DeleteTransactions(ctx, id)
	_ = st.DeleteBudgets(ctx, id)
	_ = st.DeleteAccounts(ctx, id)
	delete(st.users, id)
	return nil
}

func (st *state) numberTaken(account *models.Account) bool {
	for id, a := range st.accounts {
		if id != account.ID && a.OwnerID == account.OwnerID && a.Number == account.Number {
			return true
		}
	}
	return false
}

func (st *state) SaveAccount(_ context.Context, account *models.Account) error {
	if st.numberTaken(account) {
		return fmt.Errorf("storage.memory.SaveAccount: %w", storage.ErrAccountNumberTaken)
	}
	st.accounts[account.ID] = *account
	return nil
}

func (st *state) Accounts(_ context.Context, ownerID uuid.UUID) ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	for _, a := range st.accounts {
		if a.OwnerID == ownerID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].ID.String() < accounts[j].ID.String()
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (st *state) Account(_ context.Context, ownerID, id uuid.UUID) (*models.Account, error) {
	a, ok := st.accounts[id]
	if !ok || a.OwnerID != ownerID {
		return nil, notFound("storage.memory.Account")
	}
	return &a, nil
}

func (st *state) AccountForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*models.Account, error) {
	return st.Account(ctx, ownerID, id)
}

func (st *state) UpdateAccount(_ context.Context, account *models.Account) error {
	const op = "storage.memory.UpdateAccount"

	a, ok := st.accounts[account.ID]
	if !ok || a.OwnerID != account.OwnerID {
		return notFound(op)
	}
	if st.numberTaken(account) {
		return fmt.Errorf("%s: %w", op, storage.ErrAccountNumberTaken)
	}
	st.accounts[account.ID] = *account
	return nil
}

// DeleteAccount also removes the account's transactions.
func (st *state) DeleteAccount(_ context.Context, ownerID, id uuid.UUID) error {
	a, ok := st.accounts[id]
	if !ok || a.OwnerID != ownerID {
		return notFound("storage.memory.DeleteAccount")
	}
	for txID, tx := range st.transactions {
		if tx.AccountID == id {
			delete(st.transactions, txID)
		}
	}
	delete(st.accounts, id)
	return nil
}

func (st *state) DeleteAccounts(ctx context.Context, ownerID uuid.UUID) error {
	for id, a := range st.accounts {
		if a.OwnerID == ownerID {
			_ = st.DeleteAccount(ctx, ownerID, id)
		}
	}
	return nil
}

func (st *state) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	a, ok := st.accounts[tx.AccountID]
	if !ok || a.OwnerID != tx.OwnerID {
		return fmt.Errorf("storage.memory.SaveTransaction: account: %w", storage.ErrNotFound)
	}
	st.transactions[tx.ID] = *tx
	return nil
}

func (st *state) Transactions(_ context.Context, ownerID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0)
	for _, tx := range st.transactions {
		if tx.OwnerID != ownerID {
			continue
		}
		if filter.AccountID != uuid.Nil && tx.AccountID != filter.AccountID {
			continue
		}
		if filter.Category != "" && tx.Category != filter.Category {
			continue
		}
		if !filter.From.IsZero() && tx.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !tx.Date.Before(filter.To) {
			continue
		}
		txs = append(txs, tx)
	}
	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Date.Equal(txs[j].Date) {
			return txs[i].CreatedAt.After(txs[j].CreatedAt)
		}
		return txs[i].Date.After(txs[j].Date)
	})
	return txs, nil
}

func (st *state) Transaction(_ context.Context, ownerID, accountID, id uuid.UUID) (*models.Transaction, error) {
	tx, ok := st.transactions[id]
	if !ok || tx.OwnerID != ownerID || tx.AccountID != accountID {
		return nil, notFound("storage.memory.Transaction")
	}
	return &tx, nil
}

func (st *state) DeleteTransaction(_ context.Context, ownerID, accountID, id uuid.UUID) error {
	tx, ok := st.transactions[id]
	if !ok || tx.OwnerID != ownerID || tx.AccountID != accountID {
		return notFound("storage.memory.DeleteTransaction")
	}
	delete(st.transactions, id)
	return nil
}

func (st *state) DeleteTransactions(_ context.Context, ownerID uuid.UUID) error {
	for id, tx := range st.transactions {
		if tx.OwnerID == ownerID {
			delete(st.transactions, id)
		}
	}
	return nil
}

func (st *state) SumTransactions(_ context.Context, ownerID, accountID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range st.transactions {
		if tx.OwnerID == ownerID && tx.AccountID == accountID {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum, nil
}

func (st *state) budgetExists(budget *models.Budget) bool {
	for id, b := range st.budgets {
		if id != budget.ID && b.OwnerID == budget.OwnerID && b.Category == budget.Category && b.Month == budget.Month {
			return true
		}
	}
	return false
}

func (st *state) SaveBudget(_ context.Context, budget *models.Budget) error {
	if st.budgetExists(budget) {
		return fmt.Errorf("storage.memory.SaveBudget: %w", storage.ErrBudgetExists)
	}
	st.budgets[budget.ID] = *budget
	return nil
}

func (st *state) Budgets(_ context.Context, ownerID uuid.UUID) ([]models.Budget, error) {
	budgets := make([]models.Budget, 0)
	for _, b := range st.budgets {
		if b.OwnerID == ownerID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		if budgets[i].Month == budgets[j].Month {
			return budgets[i].Category < budgets[j].Category
		}
		return budgets[i].Month > budgets[j].Month
	})
	return budgets, nil
}

func (st *state) Budget(_ context.Context, ownerID, id uuid.UUID) (*models.Budget, error) {
	b, ok := st.budgets[id]
	if !ok || b.OwnerID != ownerID {
		return nil, notFound("storage.memory.Budget")
	}
	return &b, nil
}

func (st *state) UpdateBudget(_ context.Context, budget *models.Budget) error {
	b, ok := st.budgets[budget.ID]
	if !ok || b.OwnerID != budget.OwnerID {
		return notFound("storage.memory.UpdateBudget")
	}
	b.Limit = budget.Limit
	b.UpdatedAt = budget.UpdatedAt
	st.budgets[budget.ID] = b
	return nil
}

func (st *state) DeleteBudget(_ context.Context, ownerID, id uuid.UUID) error {
	b, ok := st.budgets[id]
	if !ok || b.OwnerID != ownerID {
		return notFound("storage.memory.DeleteBudget")
	}
	delete(st.budgets, id)
	return nil
}

func (st *state) DeleteBudgets(_ context.Context, ownerID uuid.UUID) error {
	for id, b := range st.budgets {
		if b.OwnerID == ownerID {
			delete(st.budgets, id)
		}
	}
	return nil
}
