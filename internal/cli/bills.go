package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/billtrack/internal/model"
	"github.com/ppiankov/billtrack/internal/resolver"
)

var (
	billsLikedOnly      bool
	billsSubscribedOnly bool
	refreshWorkers      int
	refreshTimeout      time.Duration
)

// billsCmd represents the bills command
var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Browse bills and manage likes and subscriptions",
	Long: `Browse the bill list and change the local state of a bill.

Examples:
  billtrack bills list --subscribed
  billtrack bills show 118-hr-1
  billtrack bills like 118-hr-1
  billtrack bills refresh --workers 8`,
}

var billsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bills",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		bills, err := a.resolver.FetchBills(ctx)
		if err != nil {
			return err
		}

		shown := bills[:0:0]
		for _, b := range bills {
			if billsLikedOnly && !b.IsLiked {
				continue
			}
			if billsSubscribedOnly && !b.IsSubscribed {
				continue
			}
			shown = append(shown, b)
		}
		renderBillList(cmd.OutOrStdout(), "Bills", shown)
		return nil
	}),
}

var billsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one bill and record the view in history",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
		bill, err := a.resolver.FetchBillDetails(ctx, args[0])
		if err != nil {
			return err
		}
		if _, err := a.history.Record(bill.ID); err != nil {
			a.logger.Warn("history not updated", "id", bill.ID, "err", err)
		}
		renderBillDetail(cmd.OutOrStdout(), bill, time.Now())
		return nil
	}),
}

var billsLikeCmd = mutationCmd("like", "Like a bill (clears dislike)", resolver.Resolver.LikeBill)
var billsDislikeCmd = mutationCmd("dislike", "Dislike a bill (clears like)", resolver.Resolver.DislikeBill)
var billsSubscribeCmd = mutationCmd("subscribe", "Subscribe to updates for a bill", resolver.Resolver.SubscribeToBill)
var billsUnsubscribeCmd = mutationCmd("unsubscribe", "Stop following a bill", resolver.Resolver.UnsubscribeFromBill)

func mutationCmd(verb, short string, op func(resolver.Resolver, context.Context, string) (model.BillRecord, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
			bill, err := op(a.resolver, ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "✓ %s: %s\n", verb, bill.ID)
			renderBillLine(cmd.OutOrStdout(), bill)
			return nil
		}),
	}
}

var billsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch details for every subscribed bill in parallel",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		workers := refreshWorkers
		if workers <= 0 {
			workers = a.cfg.Concurrency.Workers
		}
		ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()

		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "  Refreshing Subscribed Bills\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  Mode:      %s\n", a.cfg.Mode)
		fmt.Fprintf(os.Stderr, "  Workers:   %d\n", workers)
		fmt.Fprintf(os.Stderr, "  Timeout:   %v\n", refreshTimeout)
		fmt.Fprintf(os.Stderr, "\n")

		outcomes, err := resolver.RefreshSubscribed(ctx, a.resolver, workers)
		if err != nil {
			return err
		}

		failures := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", o.ID, o.Err)
				continue
			}
			fmt.Fprintf(os.Stderr, "✓ %s %s\n", o.ID, o.Value.Title)
		}

		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  Total:     %d bills\n", len(outcomes))
		fmt.Fprintf(os.Stderr, "  Success:   %d\n", len(outcomes)-failures)
		fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
		fmt.Fprintf(os.Stderr, "\n")
		return nil
	}),
}

// withApp builds the app, runs fn and maps sentinel errors to readable
// messages.
func withApp(fn func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return describe(fn(ctx, cmd, a, args))
	}
}

func describe(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrNotFound):
		return fmt.Errorf("no such bill: %w", err)
	case errors.Is(err, model.ErrConfiguration):
		return fmt.Errorf("configuration problem: %w", err)
	default:
		return err
	}
}

func init() {
	rootCmd.AddCommand(billsCmd)
	billsCmd.AddCommand(billsListCmd, billsShowCmd, billsLikeCmd, billsDislikeCmd,
		billsSubscribeCmd, billsUnsubscribeCmd, billsRefreshCmd)

	billsListCmd.Flags().BoolVar(&billsLikedOnly, "liked", false, "only liked bills")
	billsListCmd.Flags().BoolVar(&billsSubscribedOnly, "subscribed", false, "only subscribed bills")

	billsRefreshCmd.Flags().IntVar(&refreshWorkers, "workers", 0, "number of concurrent workers (default: concurrency.workers)")
	billsRefreshCmd.Flags().DurationVar(&refreshTimeout, "timeout", 2*time.Minute, "total timeout for the refresh")
}
