package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MonthLayout = "2006-01"

type Budget struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"-"`
	Category  Category        `json:"category"`
	Month     string          `json:"month"`
	Limit     decimal.Decimal `json:"limit"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
