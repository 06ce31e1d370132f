package profile

import (
	"context"
	"log/slog"

	"github.com/ppiankov/billtrack/internal/model"
)

// Remote is the friends part of the bill service. *remote.Client implements
// it.
type Remote interface {
	FetchFriends(ctx context.Context) ([]model.UserProfile, error)
	AddFriend(ctx context.Context, id string) (model.UserProfile, error)
	RemoveFriend(ctx context.Context, id string) error
}

// Result reports how a friend removal went. Optimistic is set when the local
// change was kept although the service rejected or never saw it; RemoteErr
// then holds the reason.
type Result struct {
	Friends    []model.UserProfile
	Optimistic bool
	RemoteErr  error
}

// Friends manages the profile's friend list. With a nil remote every
// operation is local.
//
// Failure policy per operation:
//   - List: a service failure falls back to the stored friends.
//   - Add: a service failure stores a placeholder friend named "Friend <id>".
//   - Remove: the friend is always removed locally; a service failure is
//     reported through Result, not as an error.
type Friends struct {
	profiles *Store
	remote   Remote
	logger   *slog.Logger
}

// NewFriends creates a friends service.
func NewFriends(profiles *Store, remote Remote, logger *slog.Logger) *Friends {
	if logger == nil {
		logger = slog.Default()
	}
	return &Friends{profiles: profiles, remote: remote, logger: logger}
}

// List returns the friends. A successful service listing replaces the stored
// list.
func (f *Friends) List(ctx context.Context) ([]model.UserProfile, error) {
	if f.remote != nil {
		friends, err := f.remote.FetchFriends(ctx)
		if err == nil {
			if _, serr := f.profiles.Modify(func(p *model.UserProfile) error {
				p.Friends = friends
				return nil
			}); serr != nil {
				f.logger.Warn("could not persist friend list", "err", serr)
			}
			return nonNil(friends), nil
		}
		f.logger.Warn("remote friend list failed, using stored friends", "err", err)
	}

	p, err := f.profiles.Fetch()
	if err != nil {
		return nil, err
	}
	return nonNil(p.Friends), nil
}

// Add adds the friend with the given id and returns their profile.
func (f *Friends) Add(ctx context.Context, id string) (model.UserProfile, error) {
	friend := placeholder(id)
	if f.remote != nil {
		fetched, err := f.remote.AddFriend(ctx, id)
		if err != nil {
			f.logger.Warn("remote add friend failed, storing placeholder", "id", id, "err", err)
		} else {
			friend = fetched
			if friend.ID == "" {
				friend.ID = id
			}
		}
	}

	_, err := f.profiles.Modify(func(p *model.UserProfile) error {
		if idx := p.FindFriend(friend.ID); idx >= 0 {
			p.Friends[idx] = friend
			return nil
		}
		p.Friends = append(p.Friends, friend)
		return nil
	})
	if err != nil {
		return model.UserProfile{}, err
	}
	return friend, nil
}

// Remove drops the friend with the given id. The returned error is non-nil
// only when the local profile cannot be updated.
func (f *Friends) Remove(ctx context.Context, id string) (Result, error) {
	var res Result
	if f.remote != nil {
		if err := f.remote.RemoveFriend(ctx, id); err != nil {
			f.logger.Warn("remote remove friend failed, removing locally anyway", "id", id, "err", err)
			res.Optimistic = true
			res.RemoteErr = err
		}
	}

	p, err := f.profiles.Modify(func(p *model.UserProfile) error {
		if idx := p.FindFriend(id); idx >= 0 {
			p.Friends = append(p.Friends[:idx], p.Friends[idx+1:]...)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	res.Friends = nonNil(p.Friends)
	return res, nil
}

func placeholder(id string) model.UserProfile {
	return model.UserProfile{
		ID:            id,
		Name:          "Friend " + id,
		Interests:     []string{},
		Friends:       []model.UserProfile{},
		Subscriptions: []model.BillRecord{},
	}
}

func nonNil(friends []model.UserProfile) []model.UserProfile {
	if friends == nil {
		return []model.UserProfile{}
	}
	return friends
}
