// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"fjacquet/finsight/internal/apperror"
	"fjacquet/finsight/internal/dateutils"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the two known variants.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense record owned by the store.
// Date is kept as the string the store returned; it is parsed on demand so
// that a malformed value only affects the computation that needs it.
type Transaction struct {
	ID          string          `csv:"ID" json:"id" yaml:"id"`
	UserID      string          `csv:"UserID" json:"userId" yaml:"user_id"`
	Type        TransactionType `csv:"Type" json:"type" yaml:"type"`
	Amount      decimal.Decimal `csv:"Amount" json:"amount" yaml:"amount"`
	Category    string          `csv:"Category" json:"category" yaml:"category"`
	Description string          `csv:"Description" json:"description,omitempty" yaml:"description,omitempty"`
	Date        string          `csv:"Date" json:"date" yaml:"date"`
}

// IsIncome returns true for income transactions
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense returns true for expense transactions
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// ParsedDate parses the transaction date.
func (t Transaction) ParsedDate() (time.Time, error) {
	d, err := dateutils.ParseDate(t.Date)
	if err != nil {
		return time.Time{}, &apperror.ParseError{
			Component: "transaction",
			Field:     "date",
			Value:     t.Date,
			Err:       err,
		}
	}
	return d, nil
}

// Validate checks the invariants every stored transaction must satisfy.
func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return &apperror.ValidationError{Field: "type", Reason: "must be income or expense, got '" + string(t.Type) + "'"}
	}
	if !t.Amount.IsPositive() {
		return &apperror.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if strings.TrimSpace(t.Category) == "" {
		return &apperror.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if _, err := t.ParsedDate(); err != nil {
		return &apperror.ValidationError{Field: "date", Reason: err.Error()}
	}
	return nil
}
