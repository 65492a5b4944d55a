// Package store implements the transaction store the insight engine and the
// voice executor read from and mutate. Three backends share one contract:
// an in-memory map, a CSV file and a SQLite database.
package store

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/finsight/internal/apperror"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// TransactionStore is the contract every backend satisfies. List returns a
// user's transactions in insertion order. Failures are *apperror.StoreError,
// *apperror.ValidationError or wrap apperror.ErrNotFound.
type TransactionStore interface {
	List(ctx context.Context, userID string) ([]models.Transaction, error)
	Get(ctx context.Context, userID, id string) (models.Transaction, error)
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	Update(ctx context.Context, userID, id string, patch Patch) (models.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	Close() error
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Type        *models.TransactionType `json:"type,omitempty"`
	Amount      *decimal.Decimal        `json:"amount,omitempty"`
	Category    *string                 `json:"category,omitempty"`
	Description *string                 `json:"description,omitempty"`
	Date        *string                 `json:"date,omitempty"`
}

// Apply returns tx with the patch applied.
func (p Patch) Apply(tx models.Transaction) models.Transaction {
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Category != nil {
		tx.Category = *p.Category
	}
	if p.Description != nil {
		tx.Description = *p.Description
	}
	if p.Date != nil {
		tx.Date = *p.Date
	}
	return tx
}

// New opens the backend named by backend. path is the CSV file or SQLite
// database and is ignored by the memory backend.
func New(backend, path string, logger logging.Logger) (TransactionStore, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	logger = logger.WithFields(
		logging.F(logging.FieldComponent, "store"),
		logging.F(logging.FieldBackend, backend),
	)

	switch strings.ToLower(backend) {
	case BackendMemory:
		return NewMemoryStore(logger), nil
	case BackendCSV:
		return NewCSVStore(path, logger)
	case BackendSQLite:
		return NewSQLiteStore(path, logger)
	default:
		return nil, &apperror.ValidationError{Field: "store.backend", Reason: fmt.Sprintf("unknown backend '%s'", backend)}
	}
}

// prepareNew assigns an id when missing and validates the record.
func prepareNew(tx models.Transaction) (models.Transaction, error) {
	if strings.TrimSpace(tx.UserID) == "" {
		return tx, &apperror.ValidationError{Field: "user_id", Reason: "must not be empty"}
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.Category = strings.TrimSpace(tx.Category)
	if err := tx.Validate(); err != nil {
		return tx, err
	}
	return tx, nil
}

func notFound(op, id string) error {
	return &apperror.StoreError{Op: op, Err: fmt.Errorf("transaction %s: %w", id, apperror.ErrNotFound)}
}
