package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently viewed bills, newest first",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, cmd *cobra.Command, a *app, _ []string) error {
		records := a.history.Fetch()
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("History (%d)", len(records))))
		for _, r := range records {
			fmt.Fprintf(w, "%s  %s\n",
				metaStyle.Render(r.ViewedAt.Local().Format("2006-01-02 15:04")),
				idStyle.Render(r.BillID))
		}
		return nil
	}),
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all viewed bills",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, _ *cobra.Command, a *app, _ []string) error {
		if err := a.history.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ History cleared\n")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)
}
