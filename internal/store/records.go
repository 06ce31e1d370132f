package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ppiankov/billtrack/internal/cache"
	"github.com/ppiankov/billtrack/internal/model"
)

// BillsKey is the storage key of the bill cache. With the disk backend the
// cache lives in bills_cache.json inside the data directory.
const BillsKey = "bills_cache"

// RecordStore owns the on-device copy of the bill set. Every load/save pair
// runs under one mutex, so a read-modify-write through Mutate cannot
// interleave with another writer. Save replaces the whole set: the last
// writer wins, there is no merge.
type RecordStore struct {
	mu     sync.Mutex
	cache  cache.Cache
	logger *slog.Logger
}

// NewRecordStore creates a store over c.
func NewRecordStore(c cache.Cache, logger *slog.Logger) *RecordStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordStore{cache: c, logger: logger}
}

// Load returns the persisted bills. Missing or undecodable data yields an
// empty slice, never an error.
func (s *RecordStore) Load() []model.BillRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites the persisted set.
func (s *RecordStore) Save(bills []model.BillRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(bills)
}

// Mutate loads the current set, hands it to fn and persists what fn returns.
// Nothing is written when fn fails.
func (s *RecordStore) Mutate(fn func(bills []model.BillRecord) ([]model.BillRecord, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := fn(s.load())
	if err != nil {
		return err
	}
	return s.save(updated)
}

func (s *RecordStore) load() []model.BillRecord {
	data, found := s.cache.Get(BillsKey)
	if !found {
		return []model.BillRecord{}
	}

	var bills []model.BillRecord
	if err := json.Unmarshal(data, &bills); err != nil {
		s.logger.Warn("bill cache unreadable, treating as empty", "err", err)
		return []model.BillRecord{}
	}
	if bills == nil {
		bills = []model.BillRecord{}
	}
	return bills
}

func (s *RecordStore) save(bills []model.BillRecord) error {
	if bills == nil {
		bills = []model.BillRecord{}
	}
	data, err := json.Marshal(bills)
	if err != nil {
		return fmt.Errorf("%w: encode bills: %v", model.ErrCorruptState, err)
	}
	if err := s.cache.Set(BillsKey, data, cache.NoExpiration); err != nil {
		return fmt.Errorf("%w: write bills: %v", model.ErrCorruptState, err)
	}
	return nil
}
