package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mowakeb-api/infrastructure/logger/logrus"
	"mowakeb-api/pkg/config"
)

// shutdownTimeout bounds the wait for queued remote writes on exit
const shutdownTimeout = 30 * time.Second

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "mowakeb",
	Short: "Research paper tracker, summaries and narration",
	Long: `mowakeb serves the Mowakeb HTTP API and exposes the same operations on the
command line: sign in, search a field, pick a paper, read its summary, keep a
reading tracker, narrate summaries and chat about a PDF.

Local state lives in the configured state backend, so a file-backed backend
(sqlite or redis) carries the session between invocations.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./mowakeb.yaml when present)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format: json or yaml")
}

// withApp loads configuration, wires the application and runs fn. Queued
// remote writes are drained before returning.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *application) error) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger := logrus.New(logrus.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	defer logger.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		app.shutdown(drainCtx)
	}()

	return fn(ctx, app)
}

// render writes v in the selected output format
func render(w io.Writer, v interface{}) error {
	switch outputFormat {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", outputFormat)
	}
}
