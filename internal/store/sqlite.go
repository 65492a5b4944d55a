package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fjacquet/finsight/internal/apperror"
	"fjacquet/finsight/internal/fileutils"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"

	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

const selectColumns = `SELECT id, user_id, type, amount, category, description, date FROM transactions`

// SQLiteStore keeps transactions in a SQLite database through the pure-Go
// modernc driver. Amounts are stored as decimal strings.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

// NewSQLiteStore opens or creates the database at dbPath and migrates it.
func NewSQLiteStore(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if dbPath == "" {
		return nil, &apperror.ValidationError{Field: "store.path", Reason: "must not be empty for the sqlite backend"}
	}
	if err := fileutils.EnsureParentDir(dbPath); err != nil {
		return nil, &apperror.StoreError{Op: "open", Err: fmt.Errorf("create db directory: %w", err)}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &apperror.StoreError{Op: "open", Err: fmt.Errorf("open sqlite database: %w", err)}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &apperror.StoreError{Op: "open", Err: fmt.Errorf("ping database: %w", err)}
	}
	if err := RunMigrations(dbPath); err != nil {
		_ = db.Close()
		return nil, &apperror.StoreError{Op: "migrate", Err: err}
	}

	logger.Info("Opened SQLite transaction store", logging.F(logging.FieldPath, dbPath))
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE user_id = ? ORDER BY seq`, userID)
	if err != nil {
		return nil, &apperror.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	out := []models.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, &apperror.StoreError{Op: "list", Err: err}
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperror.StoreError{Op: "list", Err: err}
	}
	return out, nil
}

func (s *SQLiteStore) Get(ctx context.Context, userID, id string) (models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE user_id = ? AND id = ?`, userID, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, notFound("get", id)
	}
	if err != nil {
		return models.Transaction{}, &apperror.StoreError{Op: "get", Err: err}
	}
	return tx, nil
}

func (s *SQLiteStore) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	tx, err := prepareNew(tx)
	if err != nil {
		return models.Transaction{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, type, amount, category, description, date) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, string(tx.Type), tx.Amount.String(), tx.Category, tx.Description, tx.Date)
	if err != nil {
		s.logger.WithError(err).Error("Failed to insert transaction", logging.F(logging.FieldTransactionID, tx.ID))
		return models.Transaction{}, &apperror.StoreError{Op: "create", Err: err}
	}

	s.logger.Debug("Created transaction",
		logging.F(logging.FieldUserID, tx.UserID),
		logging.F(logging.FieldTransactionID, tx.ID))
	return tx, nil
}

func (s *SQLiteStore) Update(ctx context.Context, userID, id string, patch Patch) (models.Transaction, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.Transaction{}, err
	}
	updated := patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return models.Transaction{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE transactions SET type = ?, amount = ?, category = ?, description = ?, date = ? WHERE user_id = ? AND id = ?`,
		string(updated.Type), updated.Amount.String(), updated.Category, updated.Description, updated.Date, userID, id)
	if err != nil {
		return models.Transaction{}, &apperror.StoreError{Op: "update", Err: err}
	}
	return updated, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return &apperror.StoreError{Op: "delete", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &apperror.StoreError{Op: "delete", Err: err}
	}
	if n == 0 {
		return notFound("delete", id)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		tx     models.Transaction
		txType string
		amount string
	)
	if err := row.Scan(&tx.ID, &tx.UserID, &txType, &amount, &tx.Category, &tx.Description, &tx.Date); err != nil {
		return models.Transaction{}, err
	}
	tx.Type = models.TransactionType(txType)

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Transaction{}, &apperror.ParseError{Component: "store", Field: "amount", Value: amount, Err: err}
	}
	tx.Amount = parsed
	return tx, nil
}
