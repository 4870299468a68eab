// Package benchmark computes cohort-wide latency distributions and each
// hiring manager's relative standing within them.
package benchmark

import (
	"github.com/jonathan/hm-insights/internal/latency"
	"github.com/jonathan/hm-insights/internal/types"
)

// minSampleSize is the smallest per-HM sample that supports a comparison.
const minSampleSize = 3

// Heuristic percentile-rank bands. Lower latency is better, so a higher
// rank means faster than peers. These are deliberately coarse bands, not
// true percentiles; downstream consumers depend on the exact three-band
// semantics.
const (
	rankFast = 75 // at or below the cohort median
	rankMid  = 40 // between the median and the cohort p90
	rankSlow = 10 // above the cohort p90
)

// ApplyPeerBenchmarks fills each rollup's PeerComparison in place. Cohort
// distributions take one sample per HM (that HM's median), not one per
// event, so prolific managers do not dominate the benchmark.
func ApplyPeerBenchmarks(rollups []types.HMRollup) {
	feedbackCohort := cohortStats(rollups, func(m types.LatencyMetrics) types.LatencyStats { return m.Feedback })
	reviewCohort := cohortStats(rollups, func(m types.LatencyMetrics) types.LatencyStats { return m.Review })
	decisionCohort := cohortStats(rollups, func(m types.LatencyMetrics) types.LatencyStats { return m.Decision })

	for i := range rollups {
		m := rollups[i].LatencyMetrics
		rollups[i].PeerComparison = types.PeerComparison{
			Feedback: standing(m.Feedback, feedbackCohort),
			Review:   standing(m.Review, reviewCohort),
			Decision: standing(m.Decision, decisionCohort),
		}
	}
}

// cohortStats builds the cohort distribution from per-HM medians.
func cohortStats(rollups []types.HMRollup, pick func(types.LatencyMetrics) types.LatencyStats) types.LatencyStats {
	var medians []float64
	for _, r := range rollups {
		if s := pick(r.LatencyMetrics); s.Median != nil {
			medians = append(medians, *s.Median)
		}
	}
	return latency.FromValues(medians, 0)
}

// standing bands one HM's metric against the cohort distribution.
func standing(own types.LatencyStats, cohort types.LatencyStats) types.PeerStanding {
	s := types.PeerStanding{
		CohortMedian:     cohort.Median,
		InsufficientData: own.SampleSize < minSampleSize,
	}
	if own.Median == nil || cohort.Median == nil || cohort.P90 == nil {
		s.InsufficientData = true
		return s
	}
	switch {
	case *own.Median <= *cohort.Median:
		s.PercentileRank = rankFast
	case *own.Median > *cohort.P90:
		s.PercentileRank = rankSlow
	default:
		s.PercentileRank = rankMid
	}
	return s
}
