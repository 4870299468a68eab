package facts

import "github.com/jonathan/hm-insights/internal/types"

// GroupCandidatesByReq indexes candidate facts by requisition ID,
// preserving input order within each group.
func GroupCandidatesByReq(cands []types.CandidateFact) map[string][]types.CandidateFact {
	byReq := make(map[string][]types.CandidateFact)
	for _, c := range cands {
		byReq[c.ReqID] = append(byReq[c.ReqID], c)
	}
	return byReq
}

// GroupEventsByReq indexes event facts by requisition ID, preserving input
// order within each group.
func GroupEventsByReq(events []types.EventFact) map[string][]types.EventFact {
	byReq := make(map[string][]types.EventFact)
	for _, ev := range events {
		byReq[ev.ReqID] = append(byReq[ev.ReqID], ev)
	}
	return byReq
}

// CountByBucket tallies candidates per decision bucket. Inactive candidates
// count against DONE regardless of the bucket their stale stage label maps
// to, so that non-DONE counts always sum to the active pipeline depth.
func CountByBucket(cands []types.CandidateFact) map[types.DecisionBucket]int {
	counts := make(map[types.DecisionBucket]int, len(types.AllBuckets))
	for _, b := range types.AllBuckets {
		counts[b] = 0
	}
	for _, c := range cands {
		if !c.IsActive {
			counts[types.BucketDone]++
			continue
		}
		counts[c.DecisionBucket]++
	}
	return counts
}

// ActiveDepth counts active candidates outside the DONE bucket.
func ActiveDepth(cands []types.CandidateFact) int {
	depth := 0
	for _, c := range cands {
		if c.IsActive && c.DecisionBucket != types.BucketDone {
			depth++
		}
	}
	return depth
}
