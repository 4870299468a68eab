// Package forecast projects requisition fill dates from current pipeline
// position using fixed historical stage-duration medians.
package forecast

import (
	"math"
	"time"

	"github.com/jonathan/hm-insights/internal/types"
)

// bucketMedianDays are the fixed historical median days spent in each
// non-terminal bucket. These are deliberately hardcoded; the engine does
// no statistical forecasting beyond them.
var bucketMedianDays = map[types.DecisionBucket]int{
	types.BucketOther:               5,
	types.BucketHMReview:            3,
	types.BucketHMInterviewDecision: 2,
	types.BucketHMFeedback:          4,
	types.BucketHMFinalDecision:     5,
	types.BucketOfferDecision:       7,
}

// Project forecasts fill dates for one requisition's candidate facts.
// Returns nil when no non-DONE bucket holds an active candidate — there is
// no pipeline to project from.
func Project(cands []types.CandidateFact, asOf time.Time) *types.FillForecast {
	current, active := furthestBucket(cands)
	if current == "" {
		return nil
	}

	// Sum the median durations from the current bucket through the end of
	// the pipeline sequence.
	remaining := 0
	started := false
	for _, b := range types.PipelineBucketOrder {
		if b == current {
			started = true
		}
		if started {
			remaining += bucketMedianDays[b]
		}
	}

	// Pipeline-density adjustment: deep pipelines tend to close sooner,
	// starved ones later.
	multiplier := 1.0
	switch {
	case active > 5:
		multiplier = 0.8
	case active < 2:
		multiplier = 1.5
	}
	likelyDays := int(math.Round(float64(remaining) * multiplier))

	earliestDays := int(math.Round(float64(likelyDays) * 0.7))
	if earliestDays < 1 {
		earliestDays = 1
	}
	lateDays := int(math.Round(float64(likelyDays) * 1.5))

	return &types.FillForecast{
		CurrentBucket: current,
		LikelyDays:    likelyDays,
		EarliestDate:  asOf.AddDate(0, 0, earliestDays),
		LikelyDate:    asOf.AddDate(0, 0, likelyDays),
		LateDate:      asOf.AddDate(0, 0, lateDays),
	}
}

// furthestBucket finds the most-advanced non-DONE bucket occupied by at
// least one active candidate, plus the total active count. Returns an
// empty bucket when the active pipeline is empty.
func furthestBucket(cands []types.CandidateFact) (types.DecisionBucket, int) {
	occupied := make(map[types.DecisionBucket]int)
	active := 0
	for _, c := range cands {
		if !c.IsActive || c.DecisionBucket == types.BucketDone {
			continue
		}
		occupied[c.DecisionBucket]++
		active++
	}
	// Walk from most advanced to least.
	for i := len(types.PipelineBucketOrder) - 1; i >= 0; i-- {
		b := types.PipelineBucketOrder[i]
		if occupied[b] > 0 {
			return b, active
		}
	}
	return "", 0
}
