package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/hm-insights/internal/types"
)

// exportCSVs writes the three dashboard-facing outputs as CSV files into
// dir, creating it if needed.
func exportCSVs(dir string, result *types.AnalysisResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}
	if err := writeCSV(filepath.Join(dir, "req_rollups.csv"), reqRollupRows(result.ReqRollups)); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "hm_rollups.csv"), hmRollupRows(result.HMRollups)); err != nil {
		return err
	}
	return writeCSV(filepath.Join(dir, "pending_actions.csv"), pendingActionRows(result.PendingActions))
}

func reqRollupRows(rollups []types.HMReqRollup) [][]string {
	rows := [][]string{{
		"req_id", "req_title", "hm_name", "function", "level", "req_age_days",
		"pipeline_depth", "stall_reason", "risk_flags", "days_since_last_movement",
		"forecast_likely_date",
	}}
	for _, rr := range rollups {
		flags := make([]string, 0, len(rr.RiskFlags))
		for _, f := range rr.RiskFlags {
			flags = append(flags, string(f))
		}
		likelyDate := ""
		if rr.Forecast != nil {
			likelyDate = rr.Forecast.LikelyDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			rr.ReqID, rr.ReqTitle, rr.HMName, rr.Function, rr.Level,
			strconv.Itoa(rr.ReqAgeDays),
			strconv.Itoa(rr.PipelineDepth),
			string(rr.PrimaryStallReason.Code),
			strings.Join(flags, ";"),
			strconv.Itoa(rr.DaysSinceLastMovement),
			likelyDate,
		})
	}
	return rows
}

func hmRollupRows(rollups []types.HMRollup) [][]string {
	rows := [][]string{{
		"hm_user_id", "hm_name", "open_reqs", "closed_reqs", "at_risk_reqs",
		"active_candidates", "pending_actions", "feedback_median_days",
		"feedback_percentile_rank",
	}}
	for _, hm := range rollups {
		median := ""
		if hm.LatencyMetrics.Feedback.Median != nil {
			median = strconv.FormatFloat(*hm.LatencyMetrics.Feedback.Median, 'f', 1, 64)
		}
		rank := ""
		if !hm.PeerComparison.Feedback.InsufficientData {
			rank = strconv.Itoa(hm.PeerComparison.Feedback.PercentileRank)
		}
		rows = append(rows, []string{
			hm.HMUserID, hm.HMName,
			strconv.Itoa(hm.OpenReqs),
			strconv.Itoa(hm.ClosedReqs),
			strconv.Itoa(hm.AtRiskReqs),
			strconv.Itoa(hm.ActiveCandidates),
			strconv.Itoa(hm.TotalPendingActions),
			median, rank,
		})
	}
	return rows
}

func pendingActionRows(pending []types.HMPendingAction) [][]string {
	rows := [][]string{{
		"action_type", "hm_name", "req_id", "req_title", "candidate_id",
		"trigger_date", "days_waiting", "days_overdue", "suggested_action",
	}}
	for _, a := range pending {
		rows = append(rows, []string{
			string(a.ActionType), a.HMName, a.ReqID, a.ReqTitle, a.CandidateID,
			a.TriggerDate.Format("2006-01-02"),
			strconv.Itoa(a.DaysWaiting),
			strconv.Itoa(a.DaysOverdue),
			a.SuggestedAction,
		})
	}
	return rows
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
