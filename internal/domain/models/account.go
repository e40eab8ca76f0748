package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

type Account struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"-"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Number      string          `json:"number"`
	Institution string          `json:"institution"`
	Currency    string          `json:"currency"`
	Balance     decimal.Decimal `json:"balance"`
	// OpeningBalance is the balance the transaction ledger is replayed from.
	OpeningBalance decimal.Decimal `json:"-"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// AccountPatch is the allow-list of fields accepted by an account update.
type AccountPatch struct {
	Name     *string          `json:"name"`
	Type     *string          `json:"type"`
	Number   *string          `json:"number"`
	Balance  *decimal.Decimal `json:"balance"`
	Currency *string          `json:"currency"`
	Active   *bool            `json:"active"`
}

func (p AccountPatch) Empty() bool {
	return p.Name == nil && p.Type == nil && p.Number == nil &&
		p.Balance == nil && p.Currency == nil && p.Active == nil
}

type Reconciliation struct {
	AccountID uuid.UUID       `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	Expected  decimal.Decimal `json:"expected"`
	Drift     decimal.Decimal `json:"drift"`
	Applied   bool            `json:"applied"`
}
