package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mowakeb-api/core/domain"
)

var trackerCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Manage the reading tracker",
}

var trackerListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show tracker entries and counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *application) error {
			view, err := app.tracker.Render(ctx)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), view)
		})
	},
}

var trackerAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a paper to the tracker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		notes, _ := cmd.Flags().GetString("notes")

		return withApp(cmd, func(ctx context.Context, app *application) error {
			user, err := app.sessions.Current(ctx)
			if err != nil {
				return err
			}
			view, err := app.tracker.AddEntry(ctx, domain.TrackerDraft{
				Title:  args[0],
				Status: domain.Status(status),
				Notes:  notes,
				Field:  user.PreferredField(),
			}, user)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), view)
		})
	},
}

var trackerStatusCmd = &cobra.Command{
	Use:   "status <index> <to-read|in-progress|done>",
	Short: "Change the status of an entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		status := domain.Status(args[1])
		if !status.Valid() {
			return fmt.Errorf("unknown status %q", args[1])
		}

		return withApp(cmd, func(ctx context.Context, app *application) error {
			view, err := app.tracker.UpdateStatus(ctx, index, status)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), view)
		})
	},
}

var trackerRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, app *application) error {
			view, err := app.tracker.RemoveEntry(ctx, index)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), view)
		})
	},
}

var trackerReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Replace the local tracker with the signed-in user's remote rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *application) error {
			user, err := app.sessions.Current(ctx)
			if err != nil {
				return err
			}
			view, err := app.tracker.Reload(ctx, user)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), view)
		})
	},
}

func parseIndex(s string) (int, error) {
	index, err := strconv.Atoi(s)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("index must be a non-negative integer, got %q", s)
	}
	return index, nil
}

func init() {
	trackerAddCmd.Flags().String("status", string(domain.StatusToRead), "to-read, in-progress or done")
	trackerAddCmd.Flags().String("notes", "", "free-text notes")

	trackerCmd.AddCommand(trackerListCmd, trackerAddCmd, trackerStatusCmd, trackerRemoveCmd, trackerReloadCmd)
	rootCmd.AddCommand(trackerCmd)
}
