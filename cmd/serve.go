package cmd

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"task-board-system.com/task-board-system/internal/auth"
	httpapi "task-board-system.com/task-board-system/internal/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task board HTTP API with the tool endpoints and notification feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		opts := httpapi.Options{RateLimitPerMinute: a.cfg.RateLimit}
		if a.cfg.JWTSecret != "" {
			opts.Tokens = auth.NewTokenManager(a.cfg.JWTSecret, a.cfg.JWTIssuer)
		}

		e := echo.New()
		e.HideBanner = true
		handler := httpapi.NewHandler(a.tasks, a.registry, a.recorder, a.cfg.StoreDriver)
		if a.store.Cache != nil {
			handler.WithCacheStats(a.store.Cache)
		}
		httpapi.Register(e, handler, opts)

		go func() {
			log.Printf("HTTP server listening on %s", a.cfg.AppURL)
			if err := e.Start(a.cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		timeout := time.Duration(a.cfg.ShutdownTimeoutSeconds) * time.Second
		wait := gfshutdown.GracefulShutdown(
			context.Background(),
			timeout,
			map[string]gfshutdown.Operation{
				// one operation so the server stops before the store closes
				"http": func(ctx context.Context) error {
					err := e.Shutdown(ctx)
					a.close(ctx)
					return err
				},
			},
		)

		exitCode := <-wait
		log.Printf("HTTP server shut down with code %d", exitCode)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
