// Package history keeps the list of recently viewed bills.
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/billtrack/internal/cache"
	"github.com/ppiankov/billtrack/internal/model"
)

// Key is the storage key of the history list.
const Key = "history_records"

// Tracker records bill views, most recent first. A bill appears at most once
// and the list never holds more than model.MaxHistory entries.
type Tracker struct {
	mu     sync.Mutex
	cache  cache.Cache
	logger *slog.Logger

	now   func() time.Time
	newID func() string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the time source used for ViewedAt.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates a tracker persisting to c.
func NewTracker(c cache.Cache, logger *slog.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		cache:  c,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record moves billID to the front of the history with the current time,
// dropping its previous entry and anything past the size bound.
func (t *Tracker) Record(billID string) (model.HistoryRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry := model.HistoryRecord{
		ID:       t.newID(),
		BillID:   billID,
		ViewedAt: t.now().UTC(),
	}

	current := t.load()
	records := make([]model.HistoryRecord, 0, len(current)+1)
	records = append(records, entry)
	for _, r := range current {
		if r.BillID != billID {
			records = append(records, r)
		}
	}
	if len(records) > model.MaxHistory {
		records = records[:model.MaxHistory]
	}

	if err := t.save(records); err != nil {
		return model.HistoryRecord{}, err
	}
	return entry, nil
}

// Fetch returns the history, most recent first.
func (t *Tracker) Fetch() []model.HistoryRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load()
}

// Clear forgets every entry.
func (t *Tracker) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.cache.Delete(Key); err != nil {
		return fmt.Errorf("%w: clear history: %v", model.ErrCorruptState, err)
	}
	return nil
}

func (t *Tracker) load() []model.HistoryRecord {
	data, found := t.cache.Get(Key)
	if !found {
		return []model.HistoryRecord{}
	}
	var records []model.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.logger.Warn("history unreadable, starting over", "err", err)
		return []model.HistoryRecord{}
	}
	if records == nil {
		records = []model.HistoryRecord{}
	}
	return records
}

func (t *Tracker) save(records []model.HistoryRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: encode history: %v", model.ErrCorruptState, err)
	}
	if err := t.cache.Set(Key, data, cache.NoExpiration); err != nil {
		return fmt.Errorf("%w: write history: %v", model.ErrCorruptState, err)
	}
	return nil
}
