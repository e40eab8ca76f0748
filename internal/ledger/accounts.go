package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type NewAccount struct {
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Number      string           `json:"number"`
	Institution string           `json:"institution"`
	Balance     *decimal.Decimal `json:"balance"`
}

func (n NewAccount) validate() error {
	required := []struct{ field, value string }{
		{"name", n.Name},
		{"type", n.Type},
		{"number", n.Number},
		{"institution", n.Institution},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, r.field)
		}
	}
	if n.Balance == nil {
		return fmt.Errorf("%w: balance is required", ErrInvalidInput)
	}
	return nil
}

func (s *Service) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]models.Account, error) {
	return s.storage.Accounts(ctx, ownerID)
}

func (s *Service) GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*models.Account, error) {
	return s.storage.Account(ctx, ownerID, id)
}

// CreateAccount stores a new account with the caller's starting balance. The
// account number must be unique among the owner's accounts.
func (s *Service) CreateAccount(ctx context.Context, ownerID uuid.UUID, in NewAccount) (*models.Account, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	account := &models.Account{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(in.Name),
		Type:           strings.TrimSpace(in.Type),
		Number:         strings.TrimSpace(in.Number),
		Institution:    strings.TrimSpace(in.Institution),
		Currency:       models.DefaultCurrency,
		Balance:        *in.Balance,
		OpeningBalance: *in.Balance,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Debug("Account created", slog.String("account", account.ID.String()))

	return account, nil
}

// UpdateAccount applies the non-nil fields of patch. A direct balance change moves
// the opening balance by the same delta so reconciliation keeps agreeing with it.
func (s *Service) UpdateAccount(ctx context.Context, ownerID, id uuid.UUID, patch models.AccountPatch) (*models.Account, error) {
	if patch.Empty() {
		return nil, ErrNoFields
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	var updated *models.Account
	err := s.storage.Atomic(ctx, func(ctx context.Context, q storage.Querier) error {
		account, err := q.AccountForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			account.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Type != nil {
			account.Type = strings.TrimSpace(*patch.Type)
		}
		if patch.Number != nil {
			account.Number = strings.TrimSpace(*patch.Number)
		}
		if patch.Currency != nil {
			account.Currency = strings.ToUpper(strings.TrimSpace(*patch.Currency))
		}
		if patch.Active != nil {
			account.Active = *patch.Active
		}
		if patch.Balance != nil {
			delta := patch.Balance.Sub(account.Balance)
			account.OpeningBalance = account.OpeningBalance.Add(delta)
			account.Balance = *patch.Balance
		}
		account.UpdatedAt = s.now()

		if err := q.UpdateAccount(ctx, account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func validatePatch(patch models.AccountPatch) error {
	fields := []struct {
		field string
		value *string
	}{
		{"name", patch.Name},
		{"type", patch.Type},
		{"number", patch.Number},
		{"currency", patch.Currency},
	}
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidInput, f.field)
		}
	}
	return nil
}

// DeleteAccount removes the account together with its transactions.
func (s *Service) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.storage.DeleteAccount(ctx, ownerID, id)
}

// ReconcileAccount compares the stored balance with opening balance plus the sum
// of the account's transactions. With apply set, a drifted balance is overwritten.
func (s *Service) ReconcileAccount(ctx context.Context, ownerID, id uuid.UUID, apply bool) (*models.Reconciliation, error) {
	var result *models.Reconciliation

	err := s.storage.Atomic(ctx, func(ctx context.Context, q storage.Querier) error {
		account, err := q.AccountForUpdate(ctx, ownerID, id)
		if err != nil {
			return err
		}

		sum, err := q.SumTransactions(ctx, ownerID, id)
		if err != nil {
			return err
		}

		expected := account.OpeningBalance.Add(sum)
		result = &models.Reconciliation{
			AccountID: id,
			Balance:   account.Balance,
			Expected:  expected,
			Drift:     account.Balance.Sub(expected),
		}

		if !apply || result.Drift.IsZero() {
			return nil
		}

		account.Balance = expected
		account.UpdatedAt = s.now()
		if err := q.UpdateAccount(ctx, account); err != nil {
			return err
		}
		result.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Applied {
		s.logger.Warn("Account balance reconciled",
			slog.String("account", id.String()),
			slog.String("drift", result.Drift.String()),
		)
	}

	return result, nil
}
