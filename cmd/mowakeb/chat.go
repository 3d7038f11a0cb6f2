package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mowakeb-api/api/dto/responses"
	"mowakeb-api/core/chatbot"
)

var chatCmd = &cobra.Command{
	Use:   "chat <pdf> <question>...",
	Short: "Upload a PDF and ask questions about it",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *application) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			msg, err := app.chat.Upload(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			app.logger.Info(msg, nil)

			var last *chatbot.Message
			for _, q := range args[1:] {
				if strings.TrimSpace(q) == "" {
					continue
				}
				reply, err := app.chat.Ask(ctx, q)
				if err != nil {
					return err
				}
				last = &reply
			}
			return render(cmd.OutOrStdout(), responses.ChatResponse{Reply: last, History: app.chat.History()})
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
