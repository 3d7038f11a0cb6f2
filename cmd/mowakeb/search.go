package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mowakeb-api/core/summary"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Submit a search and list its results",
	RunE: func(cmd *cobra.Command, args []string) error {
		field, _ := cmd.Flags().GetString("field")
		topic, _ := cmd.Flags().GetString("topic")

		return withApp(cmd, func(ctx context.Context, app *application) error {
			sc, err := app.search.Submit(ctx, field, topic)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), app.results.Load(ctx, sc.Field))
		})
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List the results of the last search",
	RunE: func(cmd *cobra.Command, args []string) error {
		field, _ := cmd.Flags().GetString("field")

		return withApp(cmd, func(ctx context.Context, app *application) error {
			list, err := loadResults(ctx, app, field)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), list)
		})
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <row>",
	Short: "Pick a row (0-based) of the last search results",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, app *application) error {
			list, err := loadResults(ctx, app, "")
			if err != nil {
				return err
			}
			if index >= len(list.Rows) {
				return fmt.Errorf("row %d out of range, %d rows listed", index, len(list.Rows))
			}
			sel, err := app.search.Select(ctx, list.Rows[index])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), sel)
		})
	},
}

// loadResults loads field, or the field of the last search when empty
func loadResults(ctx context.Context, app *application, field string) (summary.ResultList, error) {
	if field == "" {
		last, err := app.search.Last(ctx)
		if err != nil {
			return summary.ResultList{}, err
		}
		field = last.Field
	}
	return app.results.Load(ctx, field), nil
}

func init() {
	searchCmd.Flags().String("field", "", "field label (AI when empty)")
	searchCmd.Flags().String("topic", "", "free-text topic")
	resultsCmd.Flags().String("field", "", "field label (last search field when empty)")

	rootCmd.AddCommand(searchCmd, resultsCmd, selectCmd)
}
