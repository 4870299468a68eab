package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/hm-insights/internal/config"
	"github.com/jonathan/hm-insights/internal/db"
	"github.com/jonathan/hm-insights/internal/engine"
	"github.com/jonathan/hm-insights/internal/observability"
	"github.com/jonathan/hm-insights/internal/snapshot"
	"github.com/jonathan/hm-insights/internal/types"
)

var (
	analyzeSnapshotPath string
	analyzeDBURL        string
	analyzeRulesPath    string
	analyzeStagesPath   string
	analyzeAsOf         string
	analyzeFunction     string
	analyzeHM           string
	analyzeJSONOut      string
	analyzeCSVDir       string
	analyzePersist      bool
	analyzeVerbose      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full analysis over a snapshot",
	Long:  "Analyze builds fact tables from a snapshot (file or database), classifies every open requisition, detects pending actions, and benchmarks hiring managers against their peers.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSnapshotPath, "snapshot", "", "Path to snapshot JSON file")
	analyzeCmd.Flags().StringVar(&analyzeDBURL, "db-url", "", "Database URL (defaults to DATABASE_URL env var)")
	analyzeCmd.Flags().StringVar(&analyzeRulesPath, "rules", "", "Path to rules config (JSON or YAML)")
	analyzeCmd.Flags().StringVar(&analyzeStagesPath, "stage-config", "", "Path to stage mapping config (JSON or YAML)")
	analyzeCmd.Flags().StringVar(&analyzeAsOf, "as-of", "", "Analysis date (YYYY-MM-DD, defaults to today)")
	analyzeCmd.Flags().StringVar(&analyzeFunction, "function", "", "Only analyze requisitions in this function (database source only)")
	analyzeCmd.Flags().StringVar(&analyzeHM, "hm", "", "Only analyze requisitions for this hiring manager ID (database source only)")
	analyzeCmd.Flags().StringVar(&analyzeJSONOut, "json", "", "Write the full result as JSON to this path ('-' for stdout)")
	analyzeCmd.Flags().StringVar(&analyzeCSVDir, "csv-dir", "", "Write rollup and action CSVs into this directory")
	analyzeCmd.Flags().BoolVar(&analyzePersist, "persist", false, "Persist the run and its artifacts to the database")
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "Show formatted rollup and action summaries")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	asOf, err := parseAsOf(analyzeAsOf)
	if err != nil {
		return err
	}

	rules, err := loadRules(analyzeRulesPath)
	if err != nil {
		return err
	}
	stageCfg, err := config.LoadStageMappingOrDefault(analyzeStagesPath)
	if err != nil {
		return err
	}

	snap, database, err := loadAnalysisSnapshot(ctx)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	fmt.Printf("📊 Analyzing %d requisitions, %d candidates, %d events (as of %s)\n",
		len(snap.Requisitions), len(snap.Candidates), len(snap.Events), asOf.Format("2006-01-02"))

	opts := engine.Options{
		Snapshot:    snap,
		StageConfig: stageCfg,
		Rules:       rules,
		AsOf:        asOf,
	}
	if analyzeVerbose {
		opts.OnProgress = func(step, message string) {
			fmt.Printf("  [%s] %s\n", step, message)
		}
	}

	result, err := engine.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("✅ Analysis complete: %d open reqs, %d hiring managers, %d pending actions\n",
		len(result.ReqRollups), len(result.HMRollups), len(result.PendingActions))

	if analyzeVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintReqRollups(result.ReqRollups)
		printer.PrintHMRollups(result.HMRollups)
		printer.PrintPendingActions(result.PendingActions)
	}

	if analyzeJSONOut != "" {
		if err := writeResultJSON(analyzeJSONOut, result); err != nil {
			return err
		}
	}
	if analyzeCSVDir != "" {
		if err := exportCSVs(analyzeCSVDir, result); err != nil {
			return err
		}
		fmt.Printf("📁 CSVs written to %s\n", analyzeCSVDir)
	}
	if analyzePersist {
		if database == nil {
			return fmt.Errorf("--persist requires a database connection (--db-url or DATABASE_URL)")
		}
		if err := persistRun(ctx, database, asOf, result); err != nil {
			return err
		}
	}

	return nil
}

// loadAnalysisSnapshot resolves the snapshot source: an explicit file wins,
// otherwise the database. The returned DB is non-nil only when a database
// connection was opened, so the caller can reuse it for persistence.
func loadAnalysisSnapshot(ctx context.Context) (*types.Snapshot, *db.DB, error) {
	if analyzeSnapshotPath != "" && !analyzePersist {
		snap, err := snapshot.LoadFile(analyzeSnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		return snap, nil, nil
	}

	dbURL := analyzeDBURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	// File snapshot plus --persist still needs a connection for the run
	// record.
	if analyzeSnapshotPath != "" {
		snap, err := snapshot.LoadFile(analyzeSnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		if dbURL == "" {
			return nil, nil, fmt.Errorf("--persist requires a database connection (--db-url or DATABASE_URL)")
		}
		database, err := db.Connect(ctx, dbURL)
		if err != nil {
			return nil, nil, err
		}
		return snap, database, nil
	}

	if dbURL == "" {
		return nil, nil, fmt.Errorf("no snapshot source: provide --snapshot or a database URL via --db-url or DATABASE_URL")
	}
	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return nil, nil, err
	}
	snap, err := database.LoadSnapshot(ctx, db.SnapshotFilters{
		Function:        analyzeFunction,
		HiringManagerID: analyzeHM,
	})
	if err != nil {
		database.Close()
		return nil, nil, err
	}
	return snap, database, nil
}

// persistRun records the run, saves the artifacts, and marks the run
// complete. A failure partway through marks the run failed.
func persistRun(ctx context.Context, database *db.DB, asOf time.Time, result *types.AnalysisResult) error {
	runID, err := database.CreateRun(ctx, asOf)
	if err != nil {
		return err
	}
	if err := database.SaveResult(ctx, runID, result); err != nil {
		_ = database.CompleteRun(ctx, runID, "failed")
		return err
	}
	if err := database.CompleteRun(ctx, runID, "completed"); err != nil {
		return err
	}
	fmt.Printf("💾 Run persisted: %s\n", runID)
	return nil
}

// loadRules loads the rules config when a path is given and falls back to
// the defaults otherwise.
func loadRules(path string) (*types.HMRulesConfig, error) {
	if path == "" {
		defaults := types.DefaultHMRules()
		return &defaults, nil
	}
	return config.LoadRules(path)
}

// parseAsOf parses the --as-of flag as a UTC date, defaulting to now.
func parseAsOf(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (want YYYY-MM-DD): %w", value, err)
	}
	return t.UTC(), nil
}

// writeResultJSON writes the analysis result as indented JSON to a file or
// stdout.
func writeResultJSON(path string, result *types.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result JSON: %w", err)
	}
	fmt.Printf("📄 Result written to %s\n", path)
	return nil
}
