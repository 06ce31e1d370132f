package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/ppiankov/billtrack/internal/cache"
	"github.com/ppiankov/billtrack/internal/fixture"
	"github.com/ppiankov/billtrack/internal/history"
	"github.com/ppiankov/billtrack/internal/model"
	"github.com/ppiankov/billtrack/internal/profile"
	"github.com/ppiankov/billtrack/internal/remote"
	"github.com/ppiankov/billtrack/internal/resolver"
	"github.com/ppiankov/billtrack/internal/store"
)

// app holds the collaborators a command needs. Build one per invocation.
type app struct {
	cfg      *model.Config
	logger   *slog.Logger
	resolver resolver.Resolver
	history  *history.Tracker
	profiles *profile.Store
	friends  *profile.Friends
	redis    *redis.Client
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return buildApp(cfg, newLogger())
}

func buildApp(cfg *model.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	// Bills stay in the data directory regardless of backend.
	disk := cache.NewDiskCache(cfg.Storage.DataDir, 0)
	bills := cache.NewLayeredCache(cfg.Storage.MemoryTTL, disk)

	var state cache.Cache = disk
	switch strings.ToLower(cfg.Storage.Backend) {
	case "", "file":
	case "redis":
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		state = cache.NewRedisCache(a.redis, cfg.Storage.Redis.Prefix, 0)
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q (file or redis)", model.ErrConfiguration, cfg.Storage.Backend)
	}

	fixtures := fixture.FromDir(cfg.Fixtures.Dir)
	records := store.NewRecordStore(bills, logger)

	var client *remote.Client
	if cfg.Mode == model.ModeNetworked {
		client = remote.NewClient(cfg, logger)
	}

	var billRemote resolver.Remote
	var friendRemote profile.Remote
	if client != nil {
		billRemote = client
		friendRemote = client
	}

	r, err := resolver.New(cfg.Mode, records, fixtures, billRemote, logger)
	if err != nil {
		return nil, err
	}
	a.resolver = r

	a.history = history.NewTracker(state, logger)
	a.profiles = profile.NewStore(state, fixtures, logger)
	a.friends = profile.NewFriends(a.profiles, friendRemote, logger)
	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
