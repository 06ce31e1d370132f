package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show bills recommended for your profile",
	Long: `Recommend bills for the local profile.

In networked mode the recommendation service is asked first and its results
are merged into the local bill list, keeping your likes and subscriptions.
Otherwise the local list is filtered by the profile interests.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		p, err := a.profiles.Fetch()
		if err != nil {
			return err
		}
		bills, err := a.resolver.FetchRecommendedBills(ctx, p)
		if err != nil {
			return err
		}
		renderBillList(cmd.OutOrStdout(), "Recommended for "+orDash(p.Name), bills)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}
