package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-projectinfo/internal/httpapi"
	"github.com/goliatone/go-projectinfo/pkg/di"
)

const shutdownTimeout = 10 * time.Second

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		container, err := di.NewContainer(ctx, cfg)
		if err != nil {
			return err
		}
		defer container.Close()

		logger := container.Logger()

		if serveMigrate {
			if err := container.Migrate(ctx); err != nil {
				return err
			}
		}

		opts := httpapi.RouterOptions{Logger: logger}
		if cfg.Metrics.Enabled {
			opts.Metrics = promhttp.HandlerFor(container.Registry(), promhttp.HandlerOpts{})
			opts.MetricsPath = cfg.Metrics.Path
		}
		handler := httpapi.NewHandler(container.Service(), logger)

		srv := &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           httpapi.NewRouter(handler, opts),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("http server listening", "address", cfg.HTTP.Address)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "create the schema before serving")
	rootCmd.AddCommand(serveCmd)
}
