package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/billtrack/internal/llm"
	"github.com/ppiankov/billtrack/internal/model"
)

var (
	askBillID   string
	llmProvider string
	llmModel    string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [--bill <id>] <question>",
	Short: "Ask a question about legislation or one bill",
	Long: `Ask the configured assistant a question.

The offline assistant answers from the bill record itself. Hosted providers
(openai, anthropic) and local Ollama models need llm.* configuration or the
usual OPENAI_API_KEY, ANTHROPIC_API_KEY and OLLAMA_BASE_URL variables.

Examples:
  billtrack ask "what can you do?"
  billtrack ask --bill 118-hr-1 "who sponsored this?"
  billtrack ask --llm-provider ollama --llm-model llama3.1:8b --bill 118-hr-1 "summarize it"`,
	Args: cobra.MinimumNArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
		provider, err := newProvider(ctx, a.cfg)
		if err != nil {
			return err
		}

		var bill *model.BillRecord
		if askBillID != "" {
			b, err := a.resolver.FetchBillDetails(ctx, askBillID)
			if err != nil {
				return err
			}
			bill = &b
		}

		ans, err := provider.Ask(ctx, bill, strings.Join(args, " "))
		if err != nil {
			return err
		}
		printAnswer(cmd, ans)
		return nil
	}),
}

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <id1> <id2>",
	Short: "Compare two bills",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
		provider, err := newProvider(ctx, a.cfg)
		if err != nil {
			return err
		}

		first, err := a.resolver.FetchBillDetails(ctx, args[0])
		if err != nil {
			return err
		}
		second, err := a.resolver.FetchBillDetails(ctx, args[1])
		if err != nil {
			return err
		}

		ans, err := provider.Compare(ctx, first, second)
		if err != nil {
			return err
		}
		printAnswer(cmd, ans)
		return nil
	}),
}

// newProvider builds the configured provider and falls back to the offline
// responder when it cannot be reached.
func newProvider(ctx context.Context, cfg *model.Config) (llm.Provider, error) {
	if llmProvider != "" && !strings.EqualFold(llmProvider, cfg.LLM.Provider) {
		// A configured key belongs to the configured provider.
		cfg.LLM.Provider = llmProvider
		cfg.LLM.APIKey = ""
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	llmFromEnv(&cfg.LLM)
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg))
	if err != nil {
		return nil, err
	}
	if !provider.IsAvailable(ctx) {
		fmt.Fprintf(os.Stderr, "⚠ LLM provider %s is not available, answering offline\n", provider.Name())
		provider = llm.NewOfflineProvider()
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "  LLM:          %s/%s\n", provider.Name(), orDash(cfg.LLM.Model))
	}
	return provider, nil
}

func printAnswer(cmd *cobra.Command, ans *llm.Answer) {
	fmt.Fprintln(cmd.OutOrStdout(), ans.Text)
	if verbose && ans.TokensUsed > 0 {
		fmt.Fprintf(os.Stderr, "✓ %s, %d tokens\n", ans.Model, ans.TokensUsed)
	}
}

func init() {
	rootCmd.AddCommand(askCmd, compareCmd)

	askCmd.Flags().StringVar(&askBillID, "bill", "", "bill id to ask about")
	for _, c := range []*cobra.Command{askCmd, compareCmd} {
		c.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (offline, openai, anthropic, ollama)")
		c.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	}
}
