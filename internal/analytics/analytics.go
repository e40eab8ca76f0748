package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllAccounts selects every account of the owner.
const AllAccounts = "all"

var ErrInvalidAccount = errors.New("invalid account id")

var hundred = decimal.NewFromInt(100)

// Categorize buckets the expenses (negative amounts) of txs by category. Transactions
// in a category outside models.Categories are skipped and do not count toward the total.
func Categorize(txs []models.Transaction) models.CategoryReport {
	buckets := make(map[models.Category]decimal.Decimal, len(models.Categories))
	for _, c := range models.Categories {
		buckets[c] = decimal.Zero
	}

	for _, tx := range txs {
		if !tx.Amount.IsNegative() {
			continue
		}
		sum, ok := buckets[tx.Category]
		if !ok {
			continue
		}
		buckets[tx.Category] = sum.Add(tx.Amount.Abs())
	}

	total := decimal.Zero
	for _, c := range models.Categories {
		total = total.Add(buckets[c])
	}

	// TotalSpending is summed from the rounded values so the reported parts add up.
	report := models.CategoryReport{
		Categories:    make([]models.CategoryTotal, 0, len(models.Categories)),
		TotalSpending: decimal.Zero,
	}
	for _, c := range models.Categories {
		percentage := decimal.Zero
		if total.IsPositive() {
			percentage = buckets[c].Div(total).Mul(hundred).Round(1)
		}
		value := buckets[c].Round(2)
		report.TotalSpending = report.TotalSpending.Add(value)
		report.Categories = append(report.Categories, models.CategoryTotal{
			Name:       c,
			Value:      value,
			Percentage: percentage,
		})
	}

	return report
}

type Service struct {
	storage storage.Querier
}

func New(storage storage.Querier) *Service {
	return &Service{storage: storage}
}

// Categories reports the owner's spending. account is AllAccounts, empty, or an
// account id; an id that is not the owner's yields storage.ErrNotFound.
func (s *Service) Categories(ctx context.Context, ownerID uuid.UUID, account string) (models.CategoryReport, error) {
	filter := models.TransactionFilter{}

	account = strings.TrimSpace(account)
	if account != "" && !strings.EqualFold(account, AllAccounts) {
		id, err := uuid.Parse(account)
		if err != nil {
			return models.CategoryReport{}, fmt.Errorf("%w: %q", ErrInvalidAccount, account)
		}
		if _, err := s.storage.Account(ctx, ownerID, id); err != nil {
			return models.CategoryReport{}, err
		}
		filter.AccountID = id
	}

	txs, err := s.storage.Transactions(ctx, ownerID, filter)
	if err != nil {
		return models.CategoryReport{}, err
	}

	return Categorize(txs), nil
}
