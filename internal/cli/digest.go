package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ppiankov/billtrack/internal/digest"
)

var (
	digestCadence  string
	digestMaxCount int
)

// digestCmd represents the digest command
var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print the daily or weekly bill digest",
	Long: `Build the digest notification for the local profile.

Bills matching your interests come first, then the most recently updated
bills. Each bill appears once.

Examples:
  billtrack digest
  billtrack digest --cadence weekly --max 10`,
	Args: cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		cadence := digestCadence
		if cadence == "" {
			cadence = a.cfg.Digest.Cadence
		}
		kind, err := digest.ParseKind(cadence)
		if err != nil {
			return err
		}
		maxCount := digestMaxCount
		if maxCount <= 0 {
			maxCount = a.cfg.Digest.MaxCount
		}

		p, err := a.profiles.Fetch()
		if err != nil {
			return err
		}
		bills, err := a.resolver.FetchBills(ctx)
		if err != nil {
			return err
		}

		renderNotification(cmd.OutOrStdout(), digest.Build(kind, bills, p.Interests, maxCount))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.Flags().StringVar(&digestCadence, "cadence", "", "daily or weekly (default: digest.cadence)")
	digestCmd.Flags().IntVar(&digestMaxCount, "max", 0, "maximum number of bills (default: digest.max_count)")
}
