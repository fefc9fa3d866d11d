package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sequentlabs/sequent"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sequent",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sequent version %s\n", strings.TrimSpace(sequent.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
