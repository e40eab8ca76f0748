package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a single signed ledger event. Negative amounts are expenses.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"-"`
	AccountID uuid.UUID       `json:"accountId"`
	Name      string          `json:"name,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Category  Category        `json:"category"`
	Type      string          `json:"type"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TransactionFilter narrows a transaction listing. Zero values mean "any".
type TransactionFilter struct {
	AccountID uuid.UUID
	Category  Category
	From      time.Time
	To        time.Time
}
