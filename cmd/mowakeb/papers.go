package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mowakeb-api/core/domain"
	timeutil "mowakeb-api/pkg/utils/time"
)

var papersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Manage the local papers table of the sqlite row store",
}

var papersAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Store a paper so it appears in result lists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		mainField, _ := flags.GetString("main-field")
		subField, _ := flags.GetString("sub-field")
		abstract, _ := flags.GetString("abstract")
		htmlPath, _ := flags.GetString("html-path")
		pdfURL, _ := flags.GetString("pdf-url")
		published, _ := flags.GetString("published")

		row := domain.PaperRow{
			Title:          args[0],
			Abstract:       abstract,
			MainField:      mainField,
			SubField:       subField,
			StoredHTMLPath: htmlPath,
			PDFURL:         pdfURL,
		}
		if published != "" {
			t, ok := timeutil.Parse(published)
			if !ok {
				return fmt.Errorf("unrecognised publication date %q", published)
			}
			row.PublishedAt = &t
		}

		return withApp(cmd, func(ctx context.Context, app *application) error {
			if app.rows == nil {
				return errors.New("papers add needs rowstore.backend set to sqlite")
			}
			id, err := app.rows.AddPaper(ctx, row)
			if err != nil {
				return err
			}
			row.ID = id
			return render(cmd.OutOrStdout(), row)
		})
	},
}

func init() {
	papersAddCmd.Flags().String("main-field", "", "main field: AI, Data Science, Systems, Security or Applied AI")
	papersAddCmd.Flags().String("sub-field", "", "sub field")
	papersAddCmd.Flags().String("abstract", "", "abstract shown as the row description")
	papersAddCmd.Flags().String("html-path", "", "object path of the long-form HTML summary")
	papersAddCmd.Flags().String("pdf-url", "", "PDF link")
	papersAddCmd.Flags().String("published", "", "publication date or timestamp")
	_ = papersAddCmd.MarkFlagRequired("main-field")

	papersCmd.AddCommand(papersAddCmd)
	rootCmd.AddCommand(papersCmd)
}
