package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/billtrack/internal/model"
)

// NewProvider creates a new LLM provider based on configuration. An empty
// provider name selects the offline responder.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "offline", "":
		return NewOfflineProvider(), nil

	default:
		return nil, fmt.Errorf("%w: unknown LLM provider: %s (supported: openai, anthropic, ollama, offline)",
			model.ErrConfiguration, config.Provider)
	}
}

// ConfigFromModel converts the application config into an llm.Config. The
// proxies are shared with the bill service client.
func ConfigFromModel(cfg *model.Config) Config {
	return Config{
		Provider:   cfg.LLM.Provider,
		Model:      cfg.LLM.Model,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Timeout:    cfg.LLM.Timeout,
		MaxTokens:  cfg.LLM.MaxTokens,
		HTTPProxy:  cfg.HTTP.HTTPProxy,
		HTTPSProxy: cfg.HTTP.HTTPSProxy,
	}
}
