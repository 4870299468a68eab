// Package stall diagnoses why an open requisition is not progressing and
// flags independent risk conditions.
package stall

import (
	"fmt"
	"time"

	"github.com/jonathan/hm-insights/internal/facts"
	"github.com/jonathan/hm-insights/internal/latency"
	"github.com/jonathan/hm-insights/internal/types"
)

// Input carries everything the classifier needs for one open requisition.
type Input struct {
	Req                   types.ReqFact
	Candidates            []types.CandidateFact
	Events                []types.EventFact
	DaysSinceLastMovement int
	AsOf                  time.Time
	Rules                 types.HMRulesConfig
}

// rule is one priority-chain entry: a predicate that either declines or
// produces the stall reason.
type rule struct {
	code  types.StallReasonCode
	apply func(in Input) (types.StallReason, bool)
}

// ruleChain is evaluated strictly in order; the first rule that fires wins.
var ruleChain = []rule{
	{types.StallAwaitingHMFeedback, awaitingHMFeedback},
	{types.StallAwaitingHMReview, awaitingHMReview},
	{types.StallPipelineThin, pipelineThin},
	{types.StallNoActivity, noActivity},
	{types.StallOfferStall, offerStall},
	{types.StallLateStageEmpty, lateStageEmpty},
}

// Classify selects the single highest-priority stall reason and the
// independent risk-flag set for one open requisition.
func Classify(in Input) (types.StallReason, []types.RiskFlag) {
	reason := types.StallReason{Code: types.StallNone}
	for _, r := range ruleChain {
		if got, ok := r.apply(in); ok {
			reason = got
			break
		}
	}
	return reason, riskFlags(in)
}

// awaitingHMFeedback fires when at least one completed interview has no
// later feedback submission.
func awaitingHMFeedback(in Input) (types.StallReason, bool) {
	open := latency.OpenObservations(latency.FeedbackObservations(in.Events))
	if len(open) == 0 {
		return types.StallReason{}, false
	}
	maxOverdue := 0
	for i, o := range open {
		overdue := o.DaysWaiting(in.AsOf) - in.Rules.FeedbackDueDays
		if i == 0 || overdue > maxOverdue {
			maxOverdue = overdue
		}
	}
	return types.StallReason{
		Code:           types.StallAwaitingHMFeedback,
		Detail:         fmt.Sprintf("%d interview(s) awaiting feedback", len(open)),
		Count:          len(open),
		MaxDaysOverdue: maxOverdue,
	}, true
}

// awaitingHMReview fires when an active candidate has sat in the HM_REVIEW
// bucket past the review threshold.
func awaitingHMReview(in Input) (types.StallReason, bool) {
	count, maxOverdue := overdueInBucket(in.Candidates, types.BucketHMReview, in.Rules.HMReviewDueDays)
	if count == 0 {
		return types.StallReason{}, false
	}
	return types.StallReason{
		Code:           types.StallAwaitingHMReview,
		Detail:         fmt.Sprintf("%d candidate(s) awaiting HM review", count),
		Count:          count,
		MaxDaysOverdue: maxOverdue,
	}, true
}

// pipelineThin fires when the active pipeline is below the low-pipeline
// threshold.
func pipelineThin(in Input) (types.StallReason, bool) {
	depth := facts.ActiveDepth(in.Candidates)
	if depth >= in.Rules.LowPipelineThreshold {
		return types.StallReason{}, false
	}
	return types.StallReason{
		Code:   types.StallPipelineThin,
		Detail: fmt.Sprintf("only %d active candidate(s) in pipeline", depth),
		Count:  depth,
	}, true
}

// noActivity fires when nothing has moved on the req past the no-movement
// threshold.
func noActivity(in Input) (types.StallReason, bool) {
	if in.DaysSinceLastMovement <= in.Rules.NoMovementDays {
		return types.StallReason{}, false
	}
	return types.StallReason{
		Code:           types.StallNoActivity,
		Detail:         fmt.Sprintf("no movement for %d days", in.DaysSinceLastMovement),
		MaxDaysOverdue: in.DaysSinceLastMovement - in.Rules.NoMovementDays,
	}, true
}

// offerStall fires when an active candidate has sat in the OFFER_DECISION
// bucket past the offer threshold.
func offerStall(in Input) (types.StallReason, bool) {
	count, maxOverdue := overdueInBucket(in.Candidates, types.BucketOfferDecision, in.Rules.OfferStallDays)
	if count == 0 {
		return types.StallReason{}, false
	}
	return types.StallReason{
		Code:           types.StallOfferStall,
		Detail:         fmt.Sprintf("%d offer(s) pending decision", count),
		Count:          count,
		MaxDaysOverdue: maxOverdue,
	}, true
}

// lateStageEmpty fires when an aging req has nobody left in the two
// most-terminal pre-hire buckets.
func lateStageEmpty(in Input) (types.StallReason, bool) {
	if in.Req.ReqAgeDays <= in.Rules.LateStageEmptyDays {
		return types.StallReason{}, false
	}
	lateStage := 0
	for _, c := range in.Candidates {
		if !c.IsActive {
			continue
		}
		if c.DecisionBucket == types.BucketHMFinalDecision || c.DecisionBucket == types.BucketOfferDecision {
			lateStage++
		}
	}
	if lateStage > 0 {
		return types.StallReason{}, false
	}
	return types.StallReason{
		Code:   types.StallLateStageEmpty,
		Detail: fmt.Sprintf("req open %d days with empty late-stage pipeline", in.Req.ReqAgeDays),
	}, true
}

// overdueInBucket counts active candidates in a bucket whose stage age
// exceeds the threshold, returning the count and the worst overshoot.
func overdueInBucket(cands []types.CandidateFact, bucket types.DecisionBucket, dueDays int) (int, int) {
	count, maxOverdue := 0, 0
	for _, c := range cands {
		if !c.IsActive || c.DecisionBucket != bucket {
			continue
		}
		if c.StageAgeDays <= dueDays {
			continue
		}
		count++
		if overdue := c.StageAgeDays - dueDays; overdue > maxOverdue {
			maxOverdue = overdue
		}
	}
	return count, maxOverdue
}

// riskFlags computes the independent, non-exclusive flags from the same
// thresholds. Order is fixed for deterministic output.
func riskFlags(in Input) []types.RiskFlag {
	var flags []types.RiskFlag
	if in.DaysSinceLastMovement > in.Rules.NoMovementDays {
		flags = append(flags, types.RiskNoMovement)
	}
	if facts.ActiveDepth(in.Candidates) < in.Rules.LowPipelineThreshold {
		flags = append(flags, types.RiskLowPipeline)
	}
	if hasOverdueFeedback(in) {
		flags = append(flags, types.RiskFeedbackBacklog)
	}
	if count, _ := overdueInBucket(in.Candidates, types.BucketHMReview, in.Rules.HMReviewDueDays); count > 0 {
		flags = append(flags, types.RiskHMReviewBacklog)
	}
	return flags
}

// hasOverdueFeedback reports whether any open feedback item is past its
// due threshold.
func hasOverdueFeedback(in Input) bool {
	for _, o := range latency.OpenObservations(latency.FeedbackObservations(in.Events)) {
		if o.DaysWaiting(in.AsOf) > in.Rules.FeedbackDueDays {
			return true
		}
	}
	return false
}

// movementEvents are the event types that count as pipeline movement.
var movementEvents = map[types.EventType]bool{
	types.EventStageChange:        true,
	types.EventInterviewCompleted: true,
	types.EventOfferExtended:      true,
	types.EventOfferAccepted:      true,
}

// LastMovement returns the most recent movement event time for a req's
// events, or nil when no movement has ever been recorded.
func LastMovement(events []types.EventFact) *time.Time {
	var last *time.Time
	for _, ev := range events {
		if !movementEvents[ev.EventType] {
			continue
		}
		if last == nil || ev.EventAt.After(*last) {
			at := ev.EventAt
			last = &at
		}
	}
	return last
}

// DaysSinceLastMovement measures idle time as of the snapshot instant.
// A req with no movement events at all has been idle since it opened, so
// the req age stands in.
func DaysSinceLastMovement(req types.ReqFact, events []types.EventFact, asOf time.Time) int {
	last := LastMovement(events)
	if last == nil {
		return req.ReqAgeDays
	}
	return facts.DaysBetween(*last, asOf)
}
