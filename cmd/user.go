package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Archasion/arlox/roblox/users"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user <id|username>...",
	Short: "Show user profiles",
	Long: `Show the full public profile for one or more users.

Numeric arguments are treated as user IDs, anything else as a username.
Use --by-username to force username interpretation, since a handful of
legacy accounts have purely numeric names.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUser,
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind the configured cookie",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(whoamiCmd)

	userCmd.Flags().BoolVar(&byUsername, "by-username", false, "treat every argument as a username")
}

func runUser(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ids, err := resolveUserArgs(ctx, args)
	if err != nil {
		return err
	}

	profiles, err := usersClient.FetchProfiles(ctx, ids)
	if err != nil {
		return err
	}

	for _, user := range profiles {
		printUser(user)
	}

	return nil
}

// resolveUserArgs maps command arguments to user IDs, batching any
// username lookups into one round trip.
func resolveUserArgs(ctx context.Context, args []string) ([]int64, error) {
	byArg := make(map[string]int64, len(args))
	var names []string

	for _, arg := range args {
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil && !byUsername {
			byArg[arg] = id
			continue
		}
		names = append(names, arg)
	}

	if len(names) > 0 {
		resolved, err := usersClient.FindMany(ctx, names, false)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve usernames: %w", err)
		}
		for name, id := range resolved {
			byArg[name] = id
		}
	}

	var ids []int64
	for _, arg := range args {
		id, ok := byArg[arg]
		if !ok {
			fmt.Printf("✗ %s: no such user\n", arg)
			continue
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("none of the given users exist")
	}
	return ids, nil
}

func printUser(user users.User) {
	fmt.Printf("• %s", user.Label())
	if user.HasVerifiedBadge {
		fmt.Printf(" [VERIFIED]")
	}
	if user.Banned {
		fmt.Printf(" [BANNED]")
	}
	fmt.Println()

	fmt.Printf("  ID: %d\n", user.ID)
	fmt.Printf("  Created: %s\n", user.Created.Format("2006-01-02"))
	if user.ExternalAppDisplayName != "" {
		fmt.Printf("  External display name: %s\n", user.ExternalAppDisplayName)
	}
	if description := strings.TrimSpace(user.Description); description != "" {
		fmt.Printf("  Description: %s\n", firstLine(description))
	}
}

// firstLine trims a profile description down to its first line so
// multi-paragraph profiles don't flood the listing.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i]) + " …"
	}
	return s
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if cfg.Roblox.Cookie == "" {
		return fmt.Errorf("no cookie configured; set roblox.cookie, ARLOX_ROBLOX_COOKIE, or --cookie")
	}

	user, err := usersClient.Authenticated(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch authenticated user: %w", err)
	}

	fmt.Printf("Logged in as %s (ID: %d)\n", user.Label(), user.ID)
	return nil
}
