// Package fixture serves the read-only seed data bundled with the binary.
package fixture

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/ppiankov/billtrack/internal/model"
)

// Asset names inside the fixture filesystem.
const (
	BillsAsset   = "bills.json"
	ProfileAsset = "userProfile.json"
)

//go:embed assets/*.json
var embedded embed.FS

// Source loads the bundled bill list and profile. Each asset is parsed once;
// later calls return copies of the same content. A missing or malformed
// asset is an ErrConfiguration: it means the build is broken.
type Source struct {
	fsys fs.FS

	billsOnce sync.Once
	bills     []model.BillRecord
	billsErr  error

	profileOnce sync.Once
	profile     model.UserProfile
	profileErr  error
}

// New creates a Source reading from fsys.
func New(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Embedded returns a Source over the assets compiled into the binary.
func Embedded() *Source {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(fmt.Sprintf("fixture: embedded assets: %v", err))
	}
	return New(sub)
}

// FromDir returns a Source over a directory on disk, or the embedded
// assets when dir is empty.
func FromDir(dir string) *Source {
	if dir == "" {
		return Embedded()
	}
	return New(os.DirFS(dir))
}

// LoadBills returns the bundled bill list.
func (s *Source) LoadBills() ([]model.BillRecord, error) {
	s.billsOnce.Do(func() {
		s.billsErr = s.decode(BillsAsset, &s.bills)
		if s.billsErr == nil && s.bills == nil {
			s.bills = []model.BillRecord{}
		}
	})
	if s.billsErr != nil {
		return nil, s.billsErr
	}
	out := make([]model.BillRecord, len(s.bills))
	copy(out, s.bills)
	return out, nil
}

// LoadProfile returns the bundled first-run profile.
func (s *Source) LoadProfile() (model.UserProfile, error) {
	s.profileOnce.Do(func() {
		s.profileErr = s.decode(ProfileAsset, &s.profile)
	})
	if s.profileErr != nil {
		return model.UserProfile{}, s.profileErr
	}
	p := s.profile
	p.Interests = append([]string(nil), s.profile.Interests...)
	p.Friends = append([]model.UserProfile(nil), s.profile.Friends...)
	p.Subscriptions = append([]model.BillRecord(nil), s.profile.Subscriptions...)
	return p, nil
}

func (s *Source) decode(name string, v any) error {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s not found in fixture bundle", model.ErrConfiguration, name)
		}
		return fmt.Errorf("%w: read %s: %v", model.ErrConfiguration, name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", model.ErrConfiguration, name, err)
	}
	return nil
}
