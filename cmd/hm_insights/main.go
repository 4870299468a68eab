// Package main provides the entry point for the hm-insights CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hm_insights",
	Short: "Hiring-manager performance analytics",
	Long:  "hm_insights derives hiring-manager performance facts from event-sourced recruiting data: pipeline position, stall causes, overdue actions, peer latency benchmarks, and fill-date forecasts.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
