package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/billtrack/internal/cache"
	"github.com/ppiankov/billtrack/internal/fixture"
	"github.com/ppiankov/billtrack/internal/model"
)

const fixtureProfile = `{"id":"u1","name":"Ada","age":36,"location":"London","interests":["Energy"],"friends":[{"id":"f1","name":"Sam","age":30,"location":"Leeds","interests":[],"friends":[],"subscriptions":[]}],"subscriptions":[]}`

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) (*Store, cache.Cache) {
	t.Helper()
	c := cache.NewDiskCache(t.TempDir(), 0)
	src := fixture.New(fstest.MapFS{
		fixture.ProfileAsset: {Data: []byte(fixtureProfile)},
	})
	return NewStore(c, src, discard()), c
}

func TestStore_BootstrapsFromFixture(t *testing.T) {
	s, c := newStore(t)

	p, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)

	_, found := c.Get(Key)
	assert.True(t, found, "bootstrap is persisted")
}

func TestStore_CorruptProfileRebootstraps(t *testing.T) {
	s, c := newStore(t)
	require.NoError(t, c.Set(Key, []byte("{"), cache.NoExpiration))

	p, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
}

func TestStore_MissingFixtureIsConfigurationFault(t *testing.T) {
	s := NewStore(cache.NewDiskCache(t.TempDir(), 0), fixture.New(fstest.MapFS{}), discard())
	_, err := s.Fetch()
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestStore_UpdateThenFetch(t *testing.T) {
	s, _ := newStore(t)

	p, err := s.Fetch()
	require.NoError(t, err)
	p.Interests = []string{"Housing", "Transit"}

	updated, err := s.Update(p)
	require.NoError(t, err)
	assert.Equal(t, p, updated)

	again, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []string{"Housing", "Transit"}, again.Interests)
}

func TestStore_ModifyErrorWritesNothing(t *testing.T) {
	s, _ := newStore(t)
	boom := errors.New("boom")

	_, err := s.Modify(func(p *model.UserProfile) error {
		p.Name = "changed"
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
}

func TestStore_Reset(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Update(model.UserProfile{ID: "u1", Name: "Renamed"})
	require.NoError(t, err)

	require.NoError(t, s.Reset())

	p, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
}

type fakeRemote struct {
	friends   []model.UserProfile
	listErr   error
	addErr    error
	removeErr error
	removed   []string
}

func (f *fakeRemote) FetchFriends(context.Context) ([]model.UserProfile, error) {
	return f.friends, f.listErr
}

func (f *fakeRemote) AddFriend(_ context.Context, id string) (model.UserProfile, error) {
	if f.addErr != nil {
		return model.UserProfile{}, f.addErr
	}
	return model.UserProfile{ID: id, Name: "Remote " + id}, nil
}

func (f *fakeRemote) RemoveFriend(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return f.removeErr
}

var errDown = errors.Join(model.ErrTransport, errors.New("connection refused"))

func friendIDs(friends []model.UserProfile) []string {
	out := make([]string, 0, len(friends))
	for _, f := range friends {
		out = append(out, f.ID)
	}
	return out
}

func TestFriends_Offline(t *testing.T) {
	s, _ := newStore(t)
	f := NewFriends(s, nil, discard())
	ctx := context.Background()

	friends, err := f.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1"}, friendIDs(friends))

	added, err := f.Add(ctx, "f2")
	require.NoError(t, err)
	assert.Equal(t, "Friend f2", added.Name)

	res, err := f.Remove(ctx, "f1")
	require.NoError(t, err)
	assert.False(t, res.Optimistic)
	assert.Equal(t, []string{"f2"}, friendIDs(res.Friends))
}

func TestFriends_ListPersistsRemote(t *testing.T) {
	s, _ := newStore(t)
	f := NewFriends(s, &fakeRemote{friends: []model.UserProfile{{ID: "r1"}}}, discard())

	friends, err := f.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, friendIDs(friends))

	p, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, friendIDs(p.Friends))
}

func TestFriends_ListFallsBackToStored(t *testing.T) {
	s, _ := newStore(t)
	f := NewFriends(s, &fakeRemote{listErr: errDown}, discard())

	friends, err := f.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"f1"}, friendIDs(friends))
}

func TestFriends_AddUsesRemoteProfile(t *testing.T) {
	s, _ := newStore(t)
	f := NewFriends(s, &fakeRemote{}, discard())

	added, err := f.Add(context.Background(), "f9")
	require.NoError(t, err)
	assert.Equal(t, "Remote f9", added.Name)

	p, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f9"}, friendIDs(p.Friends))
}

func TestFriends_AddFailureStoresPlaceholder(t *testing.T) {
	s, _ := newStore(t)
	f := NewFriends(s, &fakeRemote{addErr: errDown}, discard())

	added, err := f.Add(context.Background(), "f9")
	require.NoError(t, err)
	assert.Equal(t, "Friend f9", added.Name)

	p, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, "Friend f9", p.Friends[p.FindFriend("f9")].Name)
}

func TestFriends_AddTwiceKeepsOneEntry(t *testing.T) {
	s, _ := newStore(t)
	f := NewFriends(s, nil, discard())

	_, err := f.Add(context.Background(), "f1")
	require.NoError(t, err)

	p, err := s.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []string{"f1"}, friendIDs(p.Friends))
}

func TestFriends_RemoveIsOptimistic(t *testing.T) {
	s, _ := newStore(t)
	rem := &fakeRemote{removeErr: errDown}
	f := NewFriends(s, rem, discard())

	res, err := f.Remove(context.Background(), "f1")
	require.NoError(t, err)
	assert.True(t, res.Optimistic)
	require.ErrorIs(t, res.RemoteErr, model.ErrTransport)
	assert.Empty(t, res.Friends)
	assert.Equal(t, []string{"f1"}, rem.removed)

	p, err := s.Fetch()
	require.NoError(t, err)
	assert.Empty(t, p.Friends)
}
