package store

import (
	"context"
	"sync"

	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
)

// MemoryStore keeps transactions in process memory. It is safe for
// concurrent use and is the default backend for tests.
type MemoryStore struct {
	mu     sync.RWMutex
	txs    []models.Transaction
	logger logging.Logger
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(logger logging.Logger) *MemoryStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &MemoryStore{logger: logger}
}

// NewMemoryStoreWith creates a store preloaded with txs, which are trusted
// as-is.
func NewMemoryStoreWith(logger logging.Logger, txs ...models.Transaction) *MemoryStore {
	s := NewMemoryStore(logger)
	s.txs = append(s.txs, txs...)
	return s
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterUser(s.txs, userID), nil
}

func (s *MemoryStore) Get(_ context.Context, userID, id string) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.txs, userID, id)
	if i < 0 {
		return models.Transaction{}, notFound("get", id)
	}
	return s.txs[i], nil
}

func (s *MemoryStore) Create(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	tx, err := prepareNew(tx)
	if err != nil {
		return models.Transaction{}, err
	}
	s.mu.Lock()
	s.txs = append(s.txs, tx)
	s.mu.Unlock()

	s.logger.Debug("Created transaction",
		logging.F(logging.FieldUserID, tx.UserID),
		logging.F(logging.FieldTransactionID, tx.ID))
	return tx, nil
}

func (s *MemoryStore) Update(_ context.Context, userID, id string, patch Patch) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.txs, userID, id)
	if i < 0 {
		return models.Transaction{}, notFound("update", id)
	}
	updated := patch.Apply(s.txs[i])
	if err := updated.Validate(); err != nil {
		return models.Transaction{}, err
	}
	s.txs[i] = updated
	return updated, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.txs, userID, id)
	if i < 0 {
		return notFound("delete", id)
	}
	s.txs = append(s.txs[:i], s.txs[i+1:]...)
	s.logger.Debug("Deleted transaction",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldTransactionID, id))
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// snapshot returns a copy of every transaction of every user.
func (s *MemoryStore) snapshot() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

func filterUser(txs []models.Transaction, userID string) []models.Transaction {
	out := []models.Transaction{}
	for _, t := range txs {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

func indexOf(txs []models.Transaction, userID, id string) int {
	for i, t := range txs {
		if t.ID == id && t.UserID == userID {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) restore(txs []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = txs
}
