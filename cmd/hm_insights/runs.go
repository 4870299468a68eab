package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hm-insights/internal/db"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted analysis runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No analysis runs found")
		return nil
	}

	fmt.Printf("%-36s  %-10s  %-10s  %s\n", "RUN ID", "AS OF", "STATUS", "CREATED")
	for _, run := range runs {
		fmt.Printf("%-36s  %-10s  %-10s  %s\n",
			run.ID,
			run.AsOfDate.Format("2006-01-02"),
			run.Status,
			run.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}
