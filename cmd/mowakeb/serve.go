package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mowakeb-api/api"
	"mowakeb-api/api/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *application) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var limiter *middleware.RateLimiter
			if app.cfg.Server.RateLimit > 0 {
				limiter = middleware.NewRateLimiter(app.cfg.Server.RateLimit, app.cfg.Server.RateBurst)
				go limiter.Run(ctx)
			}

			humaAPI, router := api.NewAPI(api.APIConfig{
				Logger:      app.logger,
				CORSOrigins: app.cfg.Server.CORSOrigins,
				Limiter:     limiter,
				Flags:       app.flags,
			})
			api.Register(humaAPI, app.services(), app.flags)

			srv := &http.Server{
				Addr:         ":" + app.cfg.Server.Port,
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 60 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				app.logger.Info("HTTP server starting", map[string]interface{}{
					"address": srv.Addr,
					"version": version,
				})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					app.logger.Error("HTTP server error", map[string]interface{}{
						"error": err.Error(),
					})
					return err
				}
			case <-ctx.Done():
			}

			app.logger.Info("Shutting down server...", nil)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				app.logger.Error("Server forced to shutdown", map[string]interface{}{
					"error": err.Error(),
				})
				return err
			}

			app.logger.Info("Server stopped", nil)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
