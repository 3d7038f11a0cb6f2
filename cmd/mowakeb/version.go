package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mowakeb-api/api"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build and API versions",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mowakeb %s (api %s)\n", version, api.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
