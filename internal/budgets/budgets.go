// Package budgets keeps monthly spending limits per category. Spending is not
// stored; it is derived from the owner's expense transactions each time a budget
// is read.
package budgets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidCategory = errors.New("invalid category")
)

type NewBudget struct {
	Category models.Category  `json:"category"`
	Month    string           `json:"month"`
	Limit    *decimal.Decimal `json:"limit"`
}

type Update struct {
	Limit *decimal.Decimal `json:"limit"`
}

type Service struct {
	storage storage.Storage
	logger  *slog.Logger
	now     func() time.Time
}

func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func validLimit(limit *decimal.Decimal) error {
	if limit == nil {
		return fmt.Errorf("%w: limit is required", ErrInvalidInput)
	}
	if !limit.IsPositive() {
		return fmt.Errorf("%w: limit must be greater than zero", ErrInvalidInput)
	}
	return nil
}

// monthRange returns the half-open interval [start, end) covered by a YYYY-MM month.
func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(models.MonthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %q must be YYYY-MM", ErrInvalidInput, month)
	}
	return start, start.AddDate(0, 1, 0), nil
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in NewBudget) (*models.Budget, error) {
	if in.Category == "" || in.Month == "" {
		return nil, fmt.Errorf("%w: category, month and limit are required", ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidCategory, in.Category)
	}
	if _, _, err := monthRange(in.Month); err != nil {
		return nil, err
	}
	if err := validLimit(in.Limit); err != nil {
		return nil, err
	}

	now := s.now()
	budget := &models.Budget{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Category:  in.Category,
		Month:     in.Month,
		Limit:     *in.Limit,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveBudget(ctx, budget); err != nil {
		return nil, err
	}

	s.logger.Debug("Budget created",
		slog.String("owner", ownerID.String()),
		slog.String("category", string(budget.Category)),
		slog.String("month", budget.Month),
	)

	if err := s.withSpending(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]models.Budget, error) {
	budgets, err := s.storage.Budgets(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	for i := range budgets {
		if err := s.withSpending(ctx, &budgets[i]); err != nil {
			return nil, err
		}
	}
	return budgets, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Budget, error) {
	budget, err := s.storage.Budget(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.withSpending(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// Update changes the limit. Category and month identify the budget and are fixed.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, in Update) (*models.Budget, error) {
	if err := validLimit(in.Limit); err != nil {
		return nil, err
	}

	budget, err := s.storage.Budget(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	budget.Limit = *in.Limit
	budget.UpdatedAt = s.now()
	if err := s.storage.UpdateBudget(ctx, budget); err != nil {
		return nil, err
	}

	if err := s.withSpending(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.storage.DeleteBudget(ctx, ownerID, id)
}

func (s *Service) withSpending(ctx context.Context, budget *models.Budget) error {
	from, to, err := monthRange(budget.Month)
	if err != nil {
		return err
	}

	txs, err := s.storage.Transactions(ctx, budget.OwnerID, models.TransactionFilter{
		Category: budget.Category,
		From:     from,
		To:       to,
	})
	if err != nil {
		return fmt.Errorf("budgets.withSpending: %w", err)
	}

	budget.Spent = Spent(txs)
	budget.Remaining = budget.Limit.Sub(budget.Spent)
	return nil
}

// Spent sums the magnitudes of the expenses among txs.
func Spent(txs []models.Transaction) decimal.Decimal {
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Amount.IsNegative() {
			spent = spent.Add(tx.Amount.Neg())
		}
	}
	return spent
}
