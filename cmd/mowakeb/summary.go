package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mowakeb-api/core/domain"
	"mowakeb-api/core/errors"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the summary of the selected paper",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *application) error {
			view, err := openSummary(ctx, app)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), view)
		})
	},
}

var summaryTrackCmd = &cobra.Command{
	Use:   "track",
	Short: "Add the selected paper to the tracker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *application) error {
			user, err := app.sessions.Current(ctx)
			if err != nil {
				return err
			}
			view, err := app.summaries.SendToTracker(ctx, user)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), view)
		})
	},
}

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Synthesize the summary narration to an audio file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		return withApp(cmd, func(ctx context.Context, app *application) error {
			view, err := openSummary(ctx, app)
			if err != nil {
				return err
			}
			status, err := app.player.Toggle(ctx, view.NarrationText)
			if err != nil {
				return fmt.Errorf("%s: %w", errors.UserMessage(err, "narration failed"), err)
			}
			if status.Clip == nil {
				return fmt.Errorf("nothing to narrate")
			}
			if err := os.WriteFile(out, status.Clip.Audio, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes of %s to %s\n", len(status.Clip.Audio), status.Clip.ContentType, out)
			return nil
		})
	},
}

// openSummary opens the view and waits for its long form
func openSummary(ctx context.Context, app *application) (domain.SummaryView, error) {
	view, task, err := app.summaries.Open(ctx)
	if err != nil || task == nil {
		return view, err
	}
	if err := task.Wait(ctx); err != nil {
		app.logger.Warn("Long-form summary not loaded", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return app.summaries.View(ctx)
}

func init() {
	narrateCmd.Flags().String("out", "narration.mp3", "output file")

	summaryCmd.AddCommand(summaryTrackCmd)
	rootCmd.AddCommand(summaryCmd, narrateCmd)
}
