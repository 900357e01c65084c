package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "attendance-service",
	Short: "SCAMS attendance service: session lifecycle, event ingestion, live updates",
	Long:  `HTTP + SSE/WebSocket API. Commands: api, migrate, seed.`,
	RunE:  runAPI, // default: run API (same as "attendance-service api")
}

func init() {
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute runs the root command and returns the error (for main to log.Fatal).
func Execute() error {
	return rootCmd.Execute()
}
