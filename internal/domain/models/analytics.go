package models

import "github.com/shopspring/decimal"

type CategoryTotal struct {
	Name       Category        `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
}

type CategoryReport struct {
	Categories    []CategoryTotal `json:"categories"`
	TotalSpending decimal.Decimal `json:"totalSpending"`
}
