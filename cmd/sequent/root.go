package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sequentlabs/sequent/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "sequent",
	Short: "Sequent is an interactive proof-session driver",
	Long: `Sequent drives incremental proof construction over a snapshot/restore
proof engine, one operation per request, over a line-oriented JSON protocol.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "sequent.yaml", "Path to the config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
}

// loadConfig resolves the effective configuration for a command.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}
