package postgres

import (
	"context"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.SaveUser(ctx, user)
}

func (s *Storage) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}
	return q.UserByID(ctx, id)
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}
	return q.UserByEmail(ctx, email)
}

func (s *Storage) UpdateUser(ctx context.Context, user *models.User) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.UpdateUser(ctx, user)
}

func (s *Storage) DeleteUser(ctx context.Context, id uuid.UUID) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.DeleteUser(ctx, id)
}

func (s *Storage) SaveAccount(ctx context.Context, account *models.Account) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.SaveAccount(ctx, account)
}

func (s *Storage) Accounts(ctx context.Context, ownerID uuid.UUID) ([]models.Account, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}
	return q.Accounts(ctx, ownerID)
}

func (s *Storage) Account(ctx context.Context, ownerID, id uuid.UUID) (*models.Account, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}
	return q.Account(ctx, ownerID, id)
}

func (s *Storage) AccountForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*models.Account, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}
	return q.AccountForUpdate(ctx, ownerID, id)
}

func (s *Storage) UpdateAccount(ctx context.Context, account *models.Account) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.UpdateAccount(ctx, account)
}

func (s *Storage) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.DeleteAccount(ctx, ownerID, id)
}

func (s *Storage) DeleteAccounts(ctx context.Context, ownerID uuid.UUID) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.DeleteAccounts(ctx, ownerID)
}

func (s *Storage) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.SaveTransaction(ctx, tx)
}

func (s *Storage) Transactions(ctx context.Context, ownerID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}
	return q.Transactions(ctx, ownerID, filter)
}

func (s *Storage) Transaction(ctx context.Context, ownerID, accountID, id uuid.UUID) (*models.Transaction, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}
	return q.Transaction(ctx, ownerID, accountID, id)
}

func (s *Storage) DeleteTransaction(ctx context.Context, ownerID, accountID, id uuid.UUID) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.DeleteTransaction(ctx, ownerID, accountID, id)
}

func (s *Storage) DeleteTransactions(ctx context.Context, ownerID uuid.UUID) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.DeleteTransactions(ctx, ownerID)
}

func (s *Storage) SumTransactions(ctx context.Context, ownerID, accountID uuid.UUID) (decimal.Decimal, error) {
	q, err := s.conn()
	if err != nil {
		return decimal.Zero, err
	}
	return q.SumTransactions(ctx, ownerID, accountID)
}

func (s *Storage) SaveBudget(ctx context.Context, budget *models.Budget) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.SaveBudget(ctx, budget)
}

func (s *Storage) Budgets(ctx context.Context, ownerID uuid.UUID) ([]models.Budget, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}
	return q.Budgets(ctx, ownerID)
}

func (s *Storage) Budget(ctx context.Context, ownerID, id uuid.UUID) (*models.Budget, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}
	return q.Budget(ctx, ownerID, id)
}

func (s *Storage) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.UpdateBudget(ctx, budget)
}

func (s *Storage) DeleteBudget(ctx context.Context, ownerID, id uuid.UUID) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.DeleteBudget(ctx, ownerID, id)
}

func (s *Storage) DeleteBudgets(ctx context.Context, ownerID uuid.UUID) error {
	q, err := s.conn()
	if err != nil {
		return err
	}
	return q.DeleteBudgets(ctx, ownerID)
}
