package main

import (
	"context"

	"github.com/spf13/cobra"

	"mowakeb-api/api/dto/responses"
	"mowakeb-api/core/domain"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show or change the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *application) error {
			user, err := app.sessions.Current(ctx)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), responses.NewSessionResponse(user))
		})
	},
}

var signInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Record the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		field, _ := cmd.Flags().GetString("field")

		return withApp(cmd, func(ctx context.Context, app *application) error {
			user, err := app.sessions.SignIn(ctx, domain.User{Email: email, Name: name, Field: field})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), responses.NewSessionResponse(&user))
		})
	},
}

var signOutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Forget the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *application) error {
			if err := app.sessions.SignOut(ctx); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), responses.NewSessionResponse(nil))
		})
	},
}

var fieldCmd = &cobra.Command{
	Use:   "field [name]",
	Short: "Set the preferred research field (AI when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := ""
		if len(args) == 1 {
			field = args[0]
		}
		return withApp(cmd, func(ctx context.Context, app *application) error {
			user, err := app.sessions.SetField(ctx, field)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), responses.NewSessionResponse(&user))
		})
	},
}

func init() {
	signInCmd.Flags().String("email", "", "email, used as the tracker owner")
	signInCmd.Flags().String("name", "", "display name")
	signInCmd.Flags().String("field", "", "preferred research field")
	_ = signInCmd.MarkFlagRequired("email")

	sessionCmd.AddCommand(signInCmd, signOutCmd, fieldCmd)
	rootCmd.AddCommand(sessionCmd)
}
