package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Archasion/arlox/filter"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search users by keyword",
	Long: `Search Roblox users whose names match the keyword, optionally
narrowed by a filter expression:

  arlox search builder --filter 'Verified && startsWith(Name, "build")'
  arlox search telamon --preset renamed`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "page size: 10, 25, 50 or 100 (default from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := args[0]

	limit := cfg.Search.Limit
	if searchLimit > 0 {
		limit = searchLimit
	}

	expression, err := getFilterExpression()
	if err != nil {
		return err
	}

	var f *filter.Filter
	if expression != "" {
		f, err = filter.Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Debug().Str("filter", expression).Msg("Filter compiled")
	}

	results, err := usersClient.Search(context.Background(), keyword, limit)
	if err != nil {
		return err
	}

	if f != nil {
		results = f.Apply(results)
	}

	if len(results) == 0 {
		fmt.Println("No users found matching the criteria.")
		return nil
	}

	fmt.Printf("\nFound %d users:\n", len(results))
	fmt.Println(strings.Repeat("-", 60))

	for _, result := range results {
		fmt.Printf("• %s", result.Label())
		if result.HasVerifiedBadge {
			fmt.Printf(" [VERIFIED]")
		}
		fmt.Println()

		fmt.Printf("  ID: %d\n", result.ID)
		if len(result.PreviousUsernames) > 0 {
			fmt.Printf("  Previously: %s\n", strings.Join(result.PreviousUsernames, ", "))
		}
	}

	return nil
}
