// Package profile persists the local user profile and manages its friends.
package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ppiankov/billtrack/internal/cache"
	"github.com/ppiankov/billtrack/internal/fixture"
	"github.com/ppiankov/billtrack/internal/model"
)

// Key is the storage key of the profile.
const Key = "userProfile"

// Store holds the single user profile. On first run, or when the stored
// profile cannot be decoded, it bootstraps from the fixture.
type Store struct {
	mu       sync.Mutex
	cache    cache.Cache
	fixtures *fixture.Source
	logger   *slog.Logger
}

// NewStore creates a profile store over c. A nil fixtures uses the embedded
// assets.
func NewStore(c cache.Cache, fixtures *fixture.Source, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if fixtures == nil {
		fixtures = fixture.Embedded()
	}
	return &Store{cache: c, fixtures: fixtures, logger: logger}
}

// Fetch returns the persisted profile, bootstrapping it from the fixture when
// it is missing or corrupt.
func (s *Store) Fetch() (model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update persists p and returns it.
func (s *Store) Update(p model.UserProfile) (model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(p); err != nil {
		return model.UserProfile{}, err
	}
	return p, nil
}

// Modify applies fn to the current profile and persists the result. Nothing
// is written when fn fails.
func (s *Store) Modify(fn func(p *model.UserProfile) error) (model.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load()
	if err != nil {
		return model.UserProfile{}, err
	}
	if err := fn(&p); err != nil {
		return model.UserProfile{}, err
	}
	if err := s.save(p); err != nil {
		return model.UserProfile{}, err
	}
	return p, nil
}

// Reset deletes the stored profile. Bills are not touched; the next Fetch
// starts again from the fixture.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cache.Delete(Key); err != nil {
		return fmt.Errorf("%w: delete profile: %v", model.ErrCorruptState, err)
	}
	return nil
}

func (s *Store) load() (model.UserProfile, error) {
	if data, found := s.cache.Get(Key); found {
		var p model.UserProfile
		err := json.Unmarshal(data, &p)
		if err == nil {
			return p, nil
		}
		s.logger.Warn("stored profile unreadable, bootstrapping from fixture", "err", err)
	}

	p, err := s.fixtures.LoadProfile()
	if err != nil {
		return model.UserProfile{}, err
	}
	if err := s.save(p); err != nil {
		s.logger.Warn("could not persist bootstrapped profile", "err", err)
	}
	return p, nil
}

func (s *Store) save(p model.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: encode profile: %v", model.ErrCorruptState, err)
	}
	if err := s.cache.Set(Key, data, cache.NoExpiration); err != nil {
		return fmt.Errorf("%w: write profile: %v", model.ErrCorruptState, err)
	}
	return nil
}
