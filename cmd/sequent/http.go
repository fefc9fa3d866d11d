package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sequentlabs/sequent"
	"github.com/sequentlabs/sequent/internal/logging"
	"github.com/sequentlabs/sequent/internal/metrics"
	httpAdapter "github.com/sequentlabs/sequent/pkg/adapters/http"
	"github.com/sequentlabs/sequent/pkg/adapters/sandbox"
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Serve the session protocol over HTTP",
	Long: `Starts one proof session and exposes it over HTTP: POST /rpc carries one
protocol request per body. /healthz and /metrics are served alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.HTTPAddr
		}

		logger := logging.New(cfg.SlogLevel())

		registry := prometheus.NewRegistry()
		driver := sequent.New(sandbox.New(),
			sequent.WithLogger(logger),
			sequent.WithDefaultBudget(cfg.DefaultBudget),
			sequent.WithMetrics(metrics.New(registry)),
		)

		handler := httpAdapter.NewHandler(driver.Dispatcher(),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithGatherer(registry),
		)

		srv := &http.Server{Addr: addr, Handler: handler}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("HTTP adapter listening", "addr", addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(httpCmd)
	httpCmd.Flags().String("addr", "", "Listen address (overrides config)")
}
