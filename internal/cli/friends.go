package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/billtrack/internal/model"
)

// friendsCmd represents the friends command
var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "List and manage friends",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, _ []string) error {
		friends, err := a.friends.List(ctx)
		if err != nil {
			return err
		}
		renderFriends(cmd.OutOrStdout(), friends)
		return nil
	}),
}

var friendsAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a friend by id",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
		friend, err := a.friends.Add(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Added %s (%s)\n", friend.Name, friend.ID)
		return nil
	}),
}

var friendsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a friend by id",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, cmd *cobra.Command, a *app, args []string) error {
		res, err := a.friends.Remove(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Removed %s\n", args[0])
		if res.Optimistic {
			fmt.Fprintln(os.Stderr, warnStyle.Render(
				fmt.Sprintf("⚠ removed locally only, the service did not confirm: %v", res.RemoteErr)))
		}
		renderFriends(cmd.OutOrStdout(), res.Friends)
		return nil
	}),
}

func renderFriends(w io.Writer, friends []model.UserProfile) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Friends (%d)", len(friends))))
	for _, f := range friends {
		fmt.Fprintf(w, "%s  %s\n", idStyle.Render(f.ID), titleStyle.Render(f.Name))
	}
}

func init() {
	rootCmd.AddCommand(friendsCmd)
	friendsCmd.AddCommand(friendsAddCmd, friendsRemoveCmd)
}
