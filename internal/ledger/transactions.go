package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateLayouts are the accepted forms of a transaction date.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

type NewTransaction struct {
	Name     string           `json:"name"`
	Amount   *decimal.Decimal `json:"amount"`
	Category models.Category  `json:"category"`
	Type     string           `json:"type"`
	Date     string           `json:"date"`
}

func (n NewTransaction) validate() (time.Time, error) {
	if n.Amount == nil {
		return time.Time{}, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}
	if n.Category == "" {
		return time.Time{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if !n.Category.Valid() {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidCategory, n.Category)
	}
	if strings.TrimSpace(n.Type) == "" {
		return time.Time{}, fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	if strings.TrimSpace(n.Date) == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return ParseDate(n.Date)
}

// ParseDate accepts an RFC 3339 timestamp or a plain calendar date.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q is not a valid date", ErrInvalidInput, value)
}

func (s *Service) ListTransactions(ctx context.Context, ownerID uuid.UUID) ([]models.Transaction, error) {
	return s.storage.Transactions(ctx, ownerID, models.TransactionFilter{})
}

// ListAccountTransactions returns ErrNotFound when the account does not belong to the owner.
func (s *Service) ListAccountTransactions(ctx context.Context, ownerID, accountID uuid.UUID) ([]models.Transaction, error) {
	if _, err := s.storage.Account(ctx, ownerID, accountID); err != nil {
		return nil, err
	}
	return s.storage.Transactions(ctx, ownerID, models.TransactionFilter{AccountID: accountID})
}

func (s *Service) GetTransaction(ctx context.Context, ownerID, accountID, id uuid.UUID) (*models.Transaction, error) {
	return s.storage.Transaction(ctx, ownerID, accountID, id)
}

// CreateTransaction records the transaction and adds its amount to the account
// balance. Nothing is written unless both succeed. The sign of the amount is
// taken as given.
func (s *Service) CreateTransaction(ctx context.Context, ownerID, accountID uuid.UUID, in NewTransaction) (*models.Transaction, decimal.Decimal, error) {
	date, err := in.validate()
	if err != nil {
		return nil, decimal.Zero, err
	}

	tx := &models.Transaction{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		AccountID: accountID,
		Name:      strings.TrimSpace(in.Name),
		Amount:    *in.Amount,
		Category:  in.Category,
		Type:      strings.TrimSpace(in.Type),
		Date:      date,
	}

	var balance decimal.Decimal
	err = s.storage.Atomic(ctx, func(ctx context.Context, q storage.Querier) error {
		account, err := q.AccountForUpdate(ctx, ownerID, accountID)
		if err != nil {
			return err
		}

		now := s.now()
		account.Balance = account.Balance.Add(tx.Amount)
		account.UpdatedAt = now
		if err := q.UpdateAccount(ctx, account); err != nil {
			return err
		}

		tx.CreatedAt = now
		if err := q.SaveTransaction(ctx, tx); err != nil {
			return err
		}

		balance = account.Balance
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	s.logger.Debug("Transaction created",
		slog.String("account", accountID.String()),
		slog.String("amount", tx.Amount.String()),
		slog.String("balance", balance.String()),
	)

	return tx, balance, nil
}

// DeleteTransaction removes the transaction and subtracts its amount from the
// account balance, reversing CreateTransaction exactly.
func (s *Service) DeleteTransaction(ctx context.Context, ownerID, accountID, id uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := s.storage.Atomic(ctx, func(ctx context.Context, q storage.Querier) error {
		account, err := q.AccountForUpdate(ctx, ownerID, accountID)
		if err != nil {
			return err
		}

		tx, err := q.Transaction(ctx, ownerID, accountID, id)
		if err != nil {
			return err
		}

		account.Balance = account.Balance.Sub(tx.Amount)
		account.UpdatedAt = s.now()
		if err := q.UpdateAccount(ctx, account); err != nil {
			return err
		}

		if err := q.DeleteTransaction(ctx, ownerID, accountID, id); err != nil {
			return err
		}

		balance = account.Balance
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	s.logger.Debug("Transaction deleted",
		slog.String("account", accountID.String()),
		slog.String("balance", balance.String()),
	)

	return balance, nil
}
