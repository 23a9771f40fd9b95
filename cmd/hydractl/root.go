package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hydractl",
	Short: "Run and administer a Hydra server",
	Long: `hydractl runs the Hydra API server and manages its database,
users, tokens and configuration.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
