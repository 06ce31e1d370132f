// Package llm answers free-form questions about bills. The model behind it
// is opaque: a hosted chat API, a local Ollama model or the offline canned
// responder.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/billtrack/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Ask answers a question, optionally about one bill.
	Ask(ctx context.Context, bill *model.BillRecord, question string) (*Answer, error)

	// Compare describes how two bills differ.
	Compare(ctx context.Context, a, b model.BillRecord) (*Answer, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Answer is a generated reply.
type Answer struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "offline" or ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "offline",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

const systemPrompt = "You are a nonpartisan assistant that explains U.S. legislation in plain language. " +
	"Answer only from the bill information given; say so when it does not cover the question."

// BuildAskPrompt builds the user prompt for a question. Without a bill the
// question is sent as is.
func BuildAskPrompt(bill *model.BillRecord, question string) string {
	if bill == nil {
		return question
	}
	return fmt.Sprintf(`Bill Information:
Title: %s
Summary: %s
Sponsor: %s

User Question: %s`, bill.Title, bill.Summary, bill.Sponsor, question)
}

// BuildComparePrompt builds the prompt comparing two bills. Full text is
// preferred over the summary when present.
func BuildComparePrompt(a, b model.BillRecord) string {
	var sb strings.Builder
	sb.WriteString("Compare the following two bills and highlight differences in title, sponsor, summary, and full text:\n")
	for i, bill := range []model.BillRecord{a, b} {
		fmt.Fprintf(&sb, "\nBill %d:\nTitle: %s\nSponsor: %s\n%s\n", i+1, bill.Title, bill.Sponsor, billText(bill))
	}
	return sb.String()
}

func billText(b model.BillRecord) string {
	if b.FullText != nil && *b.FullText != "" {
		return *b.FullText
	}
	return b.Summary
}

// completion is the raw output of one model call.
type completion struct {
	text   string
	model  string
	tokens int
}

// completer is the one call each hosted backend implements.
type completer interface {
	complete(ctx context.Context, prompt string) (completion, error)
}

func answer(ctx context.Context, c completer, prompt string) (*Answer, error) {
	out, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrTransport, err)
	}
	text := strings.TrimSpace(out.text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response from model", model.ErrTransport)
	}
	return &Answer{Text: text, Model: out.model, TokensUsed: out.tokens}, nil
}

func maxTokens(cfg Config) int {
	if cfg.MaxTokens > 0 {
		return cfg.MaxTokens
	}
	return 1000
}
