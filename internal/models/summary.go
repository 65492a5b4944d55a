package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyBucket holds the income and expense totals of one calendar month.
type MonthlyBucket struct {
	Key     string          `json:"month" yaml:"month"` // "January 2024"
	Start   time.Time       `json:"start" yaml:"start"`
	Income  decimal.Decimal `json:"income" yaml:"income"`
	Expense decimal.Decimal `json:"expense" yaml:"expense"`
	Count   int             `json:"count" yaml:"count"`
}

// Totals summarises a transaction list.
type Totals struct {
	Income  decimal.Decimal `json:"income" yaml:"income"`
	Expense decimal.Decimal `json:"expense" yaml:"expense"`
	Balance decimal.Decimal `json:"balance" yaml:"balance"`
}

// ComputeTotals sums income and expense and derives the balance.
func ComputeTotals(transactions []Transaction) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range transactions {
		if t.IsIncome() {
			totals.Income = totals.Income.Add(t.Amount)
		} else {
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expense)
	return totals
}

// UserProfile carries per-user presentation preferences for insight text.
type UserProfile struct {
	UserID         string `json:"userId" yaml:"user_id"`
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	CurrencySymbol string `json:"currencySymbol,omitempty" yaml:"currency_symbol,omitempty"`
}

// Currency returns the profile's currency symbol, defaulting to "$".
func (p UserProfile) Currency() string {
	if p.CurrencySymbol == "" {
		return "$"
	}
	return p.CurrencySymbol
}
