package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sequentlabs/sequent"
	"github.com/sequentlabs/sequent/internal/logging"
	"github.com/sequentlabs/sequent/pkg/adapters/sandbox"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the session protocol on Stdin/Stdout",
	Long: `Starts one proof session and serves the line-oriented JSON protocol:
one request per input line, one compact response per line. The process
exits 0 when the client commits the session or closes its input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		budget, _ := cmd.Flags().GetUint64("budget")
		if budget == 0 {
			budget = cfg.DefaultBudget
		}

		// Logs must not corrupt the protocol on Stdout.
		logger := logging.New(cfg.SlogLevel())

		driver := sequent.New(sandbox.New(),
			sequent.WithLogger(logger),
			sequent.WithDefaultBudget(budget),
		)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("session started", "budget", budget)
		if err := driver.Serve(ctx, os.Stdin, os.Stdout); err != nil {
			return fmt.Errorf("session loop failed: %w", err)
		}
		logger.Info("session finished", "states", driver.Service().Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Uint64("budget", 0, "Default step budget (overrides config)")
}
