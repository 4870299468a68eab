package rollup

import (
	"sort"

	"github.com/jonathan/hm-insights/internal/latency"
	"github.com/jonathan/hm-insights/internal/types"
)

// UniqueHMs returns the hiring-manager ID universe: every distinct HM
// referenced by any requisition fact, closed reqs included, sorted for
// deterministic output. Reqs with a missing HM ID contribute an empty key
// that rolls up under the "Unknown" display name.
func UniqueHMs(reqFacts []types.ReqFact) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range reqFacts {
		if !seen[r.HiringManagerID] {
			seen[r.HiringManagerID] = true
			ids = append(ids, r.HiringManagerID)
		}
	}
	sort.Strings(ids)
	return ids
}

// BuildHMRollups builds one row per hiring manager, aggregating across all
// of that HM's requisitions. Peer comparisons are filled in afterwards by
// the benchmark engine.
func BuildHMRollups(
	tables *types.FactTables,
	reqRollups []types.HMReqRollup,
	pending []types.HMPendingAction,
) ([]types.HMRollup, error) {
	reqsByHM := make(map[string][]types.ReqFact)
	for _, r := range tables.ReqFacts {
		reqsByHM[r.HiringManagerID] = append(reqsByHM[r.HiringManagerID], r)
	}
	rollupsByHM := make(map[string][]types.HMReqRollup)
	for _, rr := range reqRollups {
		rollupsByHM[rr.HMUserID] = append(rollupsByHM[rr.HMUserID], rr)
	}
	eventsByHM := make(map[string][]types.EventFact)
	for _, ev := range tables.EventFacts {
		eventsByHM[ev.HMUserID] = append(eventsByHM[ev.HMUserID], ev)
	}
	actionsByHM := make(map[string][]types.HMPendingAction)
	for _, a := range pending {
		actionsByHM[a.HMUserID] = append(actionsByHM[a.HMUserID], a)
	}

	hms := UniqueHMs(tables.ReqFacts)
	rollups := make([]types.HMRollup, 0, len(hms))
	for _, hmID := range hms {
		row, err := buildHMRollup(hmID, reqsByHM[hmID], rollupsByHM[hmID], eventsByHM[hmID], actionsByHM[hmID])
		if err != nil {
			return nil, err
		}
		rollups = append(rollups, row)
	}
	return rollups, nil
}

// buildHMRollup aggregates one hiring manager's row.
func buildHMRollup(
	hmID string,
	reqs []types.ReqFact,
	reqRollups []types.HMReqRollup,
	events []types.EventFact,
	pending []types.HMPendingAction,
) (types.HMRollup, error) {
	row := types.HMRollup{
		HMUserID:             hmID,
		HMName:               hmDisplayName(reqs),
		CandidatesByBucket:   emptyBucketCounts(),
		PendingActionsByType: make(map[types.ActionType]int),
		FunctionMix:          make(map[string]int),
		LevelMix:             make(map[string]int),
	}

	for _, r := range reqs {
		if r.IsOpen {
			row.OpenReqs++
		} else {
			row.ClosedReqs++
		}
		if r.Function != "" {
			row.FunctionMix[r.Function]++
		}
		if r.Level != "" {
			row.LevelMix[r.Level]++
		}
	}

	for _, rr := range reqRollups {
		if len(rr.RiskFlags) > 0 {
			row.AtRiskReqs++
		}
		for bucket, n := range rr.CandidatesByBucket {
			row.CandidatesByBucket[bucket] += n
		}
		row.ActiveCandidates += rr.PipelineDepth
	}

	for _, a := range pending {
		row.PendingActionsByType[a.ActionType]++
		row.TotalPendingActions++
	}

	metrics, err := latency.ComputeMetrics(events)
	if err != nil {
		return types.HMRollup{}, err
	}
	row.LatencyMetrics = metrics

	return row, nil
}

// hmDisplayName takes the resolved HM name from the first req fact; the
// fact builder already degraded missing lookups to Unknown.
func hmDisplayName(reqs []types.ReqFact) string {
	if len(reqs) == 0 {
		return "Unknown"
	}
	return reqs[0].HMName
}

// emptyBucketCounts pre-seeds every bucket with zero so aggregated rows
// always carry the full bucket set.
func emptyBucketCounts() map[types.DecisionBucket]int {
	counts := make(map[types.DecisionBucket]int, len(types.AllBuckets))
	for _, b := range types.AllBuckets {
		counts[b] = 0
	}
	return counts
}
