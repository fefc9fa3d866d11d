package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sequentlabs/sequent"
	"github.com/sequentlabs/sequent/internal/logging"
	mcpAdapter "github.com/sequentlabs/sequent/pkg/adapters/mcp"
	"github.com/sequentlabs/sequent/pkg/adapters/sandbox"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts one proof session as an MCP server on Stdin/Stdout.
This lets AI agents drive proof construction as tool calls.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger := logging.New(cfg.SlogLevel())
		// Ensure stray log output does not corrupt JSON-RPC on Stdout.
		log.SetOutput(os.Stderr)

		driver := sequent.New(sandbox.New(),
			sequent.WithLogger(logger),
			sequent.WithDefaultBudget(cfg.DefaultBudget),
		)

		logger.Info("MCP server starting (stdio)")
		srv := mcpAdapter.NewServer(driver.Dispatcher(), sequent.Version)
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
