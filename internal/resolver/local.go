package resolver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ppiankov/billtrack/internal/fixture"
	"github.com/ppiankov/billtrack/internal/model"
	"github.com/ppiankov/billtrack/internal/store"
)

// local resolves against the record store with the fixture behind it. Both
// strategies embed it.
type local struct {
	records  *store.RecordStore
	fixtures *fixture.Source
	logger   *slog.Logger
}

func newLocal(records *store.RecordStore, fixtures *fixture.Source, logger *slog.Logger) local {
	if logger == nil {
		logger = slog.Default()
	}
	if fixtures == nil {
		fixtures = fixture.Embedded()
	}
	return local{records: records, fixtures: fixtures, logger: logger}
}

// bills returns the cached set. An empty cache is seeded from the fixture,
// so later mutations apply to a persisted record.
func (l *local) bills() ([]model.BillRecord, error) {
	var out []model.BillRecord
	err := l.records.Mutate(func(bills []model.BillRecord) ([]model.BillRecord, error) {
		if len(bills) > 0 {
			out = bills
			return nil, errUnchanged
		}
		seed, err := l.fixtures.LoadBills()
		if err != nil {
			return nil, err
		}
		l.logger.Info("bill cache empty, seeded from fixture", "count", len(seed))
		out = seed
		return seed, nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		if out == nil {
			return nil, err
		}
		// The fixture loaded but could not be persisted.
		l.logger.Warn("could not persist fixture seed", "err", err)
	}
	return out, nil
}

// find looks the id up in the cache, then in the fixture.
func (l *local) find(id string) (model.BillRecord, error) {
	cached := l.records.Load()
	if idx := model.FindBill(cached, id); idx >= 0 {
		return cached[idx], nil
	}

	seed, err := l.fixtures.LoadBills()
	if err != nil {
		return model.BillRecord{}, err
	}
	if idx := model.FindBill(seed, id); idx >= 0 {
		return seed[idx], nil
	}
	return model.BillRecord{}, fmt.Errorf("bill %s: %w", id, model.ErrNotFound)
}

// mutate applies fn to the record with the given id and persists the set.
// A record known only to the fixture is brought into the cache first; an
// empty cache is seeded with the whole fixture. Nothing is written when the
// id is unknown.
func (l *local) mutate(id string, fn func(*model.BillRecord)) (model.BillRecord, error) {
	var updated model.BillRecord
	err := l.records.Mutate(func(bills []model.BillRecord) ([]model.BillRecord, error) {
		idx := model.FindBill(bills, id)
		if idx < 0 {
			seed, err := l.fixtures.LoadBills()
			if err != nil {
				return nil, err
			}
			seedIdx := model.FindBill(seed, id)
			if seedIdx < 0 {
				return nil, fmt.Errorf("bill %s: %w", id, model.ErrNotFound)
			}
			if len(bills) == 0 {
				bills = seed
				idx = seedIdx
			} else {
				bills = append(bills, seed[seedIdx])
				idx = len(bills) - 1
			}
		}

		fn(&bills[idx])
		updated = bills[idx]
		return bills, nil
	})
	if err != nil {
		return model.BillRecord{}, err
	}
	return updated, nil
}

// upsert stores bills, replacing records with the same id. merge decides the
// stored value for an id that is already cached.
func (l *local) upsert(incoming []model.BillRecord, merge func(cached, fresh model.BillRecord) model.BillRecord) ([]model.BillRecord, error) {
	out := make([]model.BillRecord, 0, len(incoming))
	err := l.records.Mutate(func(bills []model.BillRecord) ([]model.BillRecord, error) {
		if len(bills) == 0 {
			seed, err := l.fixtures.LoadBills()
			if err != nil {
				l.logger.Warn("fixture unavailable while merging", "err", err)
			} else {
				bills = seed
			}
		}
		for _, b := range incoming {
			if idx := model.FindBill(bills, b.ID); idx >= 0 {
				bills[idx] = merge(bills[idx], b)
				out = append(out, bills[idx])
				continue
			}
			bills = append(bills, b)
			out = append(out, b)
		}
		return bills, nil
	})
	if err != nil {
		return out, err
	}
	return out, nil
}

func replace(_, fresh model.BillRecord) model.BillRecord {
	return fresh
}

// keepLocalState takes the service's metadata but keeps the user's flags and
// any detail the fresh record lacks.
func keepLocalState(cached, fresh model.BillRecord) model.BillRecord {
	merged := fresh
	merged.IsLiked = cached.IsLiked
	merged.IsDisliked = cached.IsDisliked
	merged.IsSubscribed = cached.IsSubscribed
	if merged.FullText == nil {
		merged.FullText = cached.FullText
	}
	if merged.DateIntroduced == nil {
		merged.DateIntroduced = cached.DateIntroduced
	}
	if merged.LastUpdated == nil {
		merged.LastUpdated = cached.LastUpdated
	}
	return merged
}

type sentinel string

func (s sentinel) Error() string { return string(s) }

// errUnchanged aborts a Mutate without writing.
const errUnchanged = sentinel("unchanged")
