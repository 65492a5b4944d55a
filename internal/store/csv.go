package store

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"fjacquet/finsight/internal/apperror"
	"fjacquet/finsight/internal/common"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
)

// CSVStore persists every user's transactions in one CSV file. The file is
// loaded once and rewritten after each successful mutation; a failed write
// rolls the in-memory state back.
type CSVStore struct {
	path   string
	mem    *MemoryStore
	mu     sync.Mutex
	logger logging.Logger
}

// NewCSVStore loads path, which may not exist yet.
func NewCSVStore(path string, logger logging.Logger) (*CSVStore, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if path == "" {
		return nil, &apperror.ValidationError{Field: "store.path", Reason: "must not be empty for the csv backend"}
	}

	rows, err := common.ReadCSVFile[models.Transaction](path, common.DefaultDelimiter, logger)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &apperror.StoreError{Op: "open", Err: err}
	}

	logger.Info("Opened CSV transaction store",
		logging.F(logging.FieldPath, path),
		logging.F(logging.FieldCount, len(rows)))
	return &CSVStore{
		path:   path,
		mem:    NewMemoryStoreWith(logger, rows...),
		logger: logger,
	}, nil
}

func (s *CSVStore) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.mem.List(ctx, userID)
}

func (s *CSVStore) Get(ctx context.Context, userID, id string) (models.Transaction, error) {
	return s.mem.Get(ctx, userID, id)
}

func (s *CSVStore) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	var created models.Transaction
	err := s.mutate("create", func() error {
		var err error
		created, err = s.mem.Create(ctx, tx)
		return err
	})
	return created, err
}

func (s *CSVStore) Update(ctx context.Context, userID, id string, patch Patch) (models.Transaction, error) {
	var updated models.Transaction
	err := s.mutate("update", func() error {
		var err error
		updated, err = s.mem.Update(ctx, userID, id, patch)
		return err
	})
	return updated, err
}

func (s *CSVStore) Delete(ctx context.Context, userID, id string) error {
	return s.mutate("delete", func() error {
		return s.mem.Delete(ctx, userID, id)
	})
}

// Close is a no-op; data is written on every mutation.
func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) mutate(op string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.mem.snapshot()
	if err := fn(); err != nil {
		return err
	}
	if err := common.WriteCSVFile(s.path, s.mem.snapshot(), common.DefaultDelimiter, s.logger); err != nil {
		s.mem.restore(before)
		s.logger.WithError(err).Error("Failed to persist transactions", logging.F(logging.FieldOperation, op))
		return &apperror.StoreError{Op: op, Err: err}
	}
	return nil
}
