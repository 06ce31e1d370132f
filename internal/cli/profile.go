package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/billtrack/internal/model"
)

var (
	profileName       string
	profileLocation   string
	profileOccupation string
	profileAge        int
	profileInterests  []string
)

// profileCmd represents the profile command
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit the local user profile",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, cmd *cobra.Command, a *app, _ []string) error {
		p, err := a.profiles.Fetch()
		if err != nil {
			return err
		}
		renderProfile(cmd.OutOrStdout(), p)
		return nil
	}),
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	Long: `Update one or more profile fields. Unset flags keep their value.

Example:
  billtrack profile set --interests healthcare,energy --location Ohio`,
	Args: cobra.NoArgs,
	RunE: withApp(func(_ context.Context, cmd *cobra.Command, a *app, _ []string) error {
		flags := cmd.Flags()
		p, err := a.profiles.Modify(func(p *model.UserProfile) error {
			if flags.Changed("name") {
				p.Name = profileName
			}
			if flags.Changed("location") {
				p.Location = profileLocation
			}
			if flags.Changed("age") {
				if profileAge < 0 {
					return fmt.Errorf("age must not be negative")
				}
				p.Age = profileAge
			}
			if flags.Changed("occupation") {
				occupation := strings.TrimSpace(profileOccupation)
				if occupation == "" {
					p.Occupation = nil
				} else {
					p.Occupation = &occupation
				}
			}
			if flags.Changed("interests") {
				p.Interests = cleanInterests(profileInterests)
			}
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Profile updated\n")
		renderProfile(cmd.OutOrStdout(), p)
		return nil
	}),
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the profile; the seed profile is restored on next use",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, _ *cobra.Command, a *app, _ []string) error {
		if err := a.profiles.Reset(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "✓ Profile reset\n")
		return nil
	}),
}

// cleanInterests trims tags and drops blanks and case-insensitive duplicates.
func cleanInterests(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileResetCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileSetCmd.Flags().StringVar(&profileLocation, "location", "", "location")
	profileSetCmd.Flags().StringVar(&profileOccupation, "occupation", "", "occupation (empty clears it)")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "age")
	profileSetCmd.Flags().StringSliceVar(&profileInterests, "interests", nil, "comma-separated interest tags")
}
