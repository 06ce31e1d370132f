package model

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Mode selects how the resolver reaches bill data.
type Mode string

const (
	// ModeOffline resolves everything from the cache and the bundled fixture.
	ModeOffline Mode = "offline"
	// ModeNetworked prefers the remote service and falls back to local data.
	ModeNetworked Mode = "networked"
)

// Config is the full runtime configuration.
type Config struct {
	Mode         Mode               `yaml:"mode" mapstructure:"mode"`
	API          APIConfig          `yaml:"api" mapstructure:"api"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Storage      StorageConfig      `yaml:"storage" mapstructure:"storage"`
	Fixtures     FixturesConfig     `yaml:"fixtures" mapstructure:"fixtures"`
	Digest       DigestConfig       `yaml:"digest" mapstructure:"digest"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
}

// APIConfig locates the remote bill service. Paths that take an id are
// joined with the escaped id as the final path segment.
type APIConfig struct {
	BaseURL         string `yaml:"base_url" mapstructure:"base_url"`
	Bills           string `yaml:"bills" mapstructure:"bills"`
	BillDetails     string `yaml:"bill_details" mapstructure:"bill_details"`
	Recommendations string `yaml:"recommendations" mapstructure:"recommendations"`
	Like            string `yaml:"like" mapstructure:"like"`
	Dislike         string `yaml:"dislike" mapstructure:"dislike"`
	Subscribe       string `yaml:"subscribe" mapstructure:"subscribe"`
	Unsubscribe     string `yaml:"unsubscribe" mapstructure:"unsubscribe"`
	Friends         string `yaml:"friends" mapstructure:"friends"`
	FriendAdd       string `yaml:"friend_add" mapstructure:"friend_add"`
	FriendRemove    string `yaml:"friend_remove" mapstructure:"friend_remove"`
}

// HTTPConfig tunes the transport toward the remote service.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// RateLimitingConfig limits outbound requests per host.
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// StorageConfig selects where local state lives.
type StorageConfig struct {
	Backend   string        `yaml:"backend" mapstructure:"backend"` // file or redis
	DataDir   string        `yaml:"data_dir" mapstructure:"data_dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	Redis     RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig is used when Storage.Backend is "redis".
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password,omitempty" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`
}

// FixturesConfig optionally points at a directory that replaces the
// embedded seed data.
type FixturesConfig struct {
	Dir string `yaml:"dir,omitempty" mapstructure:"dir"`
}

// DigestConfig controls digest content selection.
type DigestConfig struct {
	MaxCount int    `yaml:"max_count" mapstructure:"max_count"`
	Cadence  string `yaml:"cadence" mapstructure:"cadence"` // daily or weekly
}

// ConcurrencyConfig sizes the worker pool used for batch refreshes.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LLMConfig configures the bill question-answering collaborator.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama or offline
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode: ModeOffline,
		API: APIConfig{
			BaseURL:         "http://localhost:8000",
			Bills:           "/bills",
			BillDetails:     "/bills",
			Recommendations: "/recommendations",
			Like:            "/bills/like",
			Dislike:         "/bills/dislike",
			Subscribe:       "/bills/subscribe",
			Unsubscribe:     "/bills/unsubscribe",
			Friends:         "/friends",
			FriendAdd:       "/friends/add",
			FriendRemove:    "/friends/remove",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "billtrack/0.1",
			MaxBodyBytes: 10_000_000,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 5,
			BurstSize:         10,
		},
		Storage: StorageConfig{
			Backend:   "file",
			DataDir:   filepath.Join(xdg.DataHome, "billtrack"),
			MemoryTTL: 10 * time.Minute,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "billtrack:",
			},
		},
		Digest: DigestConfig{
			MaxCount: 5,
			Cadence:  "daily",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Provider:  "offline",
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
