package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <username>...",
	Short: "Resolve usernames to user IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

// namesCmd represents the names command
var namesCmd = &cobra.Command{
	Use:   "names <id>...",
	Short: "Resolve user IDs to current usernames",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNames,
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <id|username>",
	Short: "List the previous usernames of a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(historyCmd)

	resolveCmd.Flags().BoolVar(&excludeBanned, "exclude-banned", false, "leave banned accounts out of the result")
	namesCmd.Flags().BoolVar(&excludeBanned, "exclude-banned", false, "leave banned accounts out of the result")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ids, err := usersClient.FindMany(context.Background(), args, excludeBanned)
	if err != nil {
		return err
	}

	for _, name := range args {
		if id, ok := ids[name]; ok {
			fmt.Printf("%s → %d\n", name, id)
		} else {
			fmt.Printf("%s → not found\n", name)
		}
	}

	return nil
}

func runNames(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID '%s': must be a positive integer", arg)
		}
		ids = append(ids, id)
	}

	names, err := usersClient.FetchMany(context.Background(), ids, excludeBanned)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if name, ok := names[id]; ok {
			fmt.Printf("%d → %s\n", id, name)
		} else {
			fmt.Printf("%d → not found\n", id)
		}
	}

	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		// Not numeric: resolve the username first.
		id, err = usersClient.IDByUsername(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve '%s': %w", args[0], err)
		}
	}

	history, err := usersClient.UsernameHistory(ctx, id)
	if err != nil {
		return err
	}

	if len(history) == 0 {
		fmt.Println("No previous usernames.")
		return nil
	}

	fmt.Printf("Previous usernames of %d:\n", id)
	for _, name := range history {
		fmt.Printf("  • %s\n", name)
	}

	return nil
}
