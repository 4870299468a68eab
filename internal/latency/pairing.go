package latency

import (
	"sort"

	"github.com/jonathan/hm-insights/internal/types"
)

// candReqKey scopes pairing to a single candidate on a single requisition.
type candReqKey struct {
	candidateID string
	reqID       string
}

// PairIntervals pairs each start event with the earliest end event for the
// same candidate and requisition whose timestamp is strictly later. Each
// end event is consumed at most once, and a start with no remaining end is
// an open (right-censored) observation.
func PairIntervals(events []types.EventFact, startType types.EventType, endTypes ...types.EventType) []Observation {
	endSet := make(map[types.EventType]bool, len(endTypes))
	for _, t := range endTypes {
		endSet[t] = true
	}

	starts := make(map[candReqKey][]types.EventFact)
	ends := make(map[candReqKey][]types.EventFact)
	keyOrder := make([]candReqKey, 0)
	for _, ev := range events {
		key := candReqKey{candidateID: ev.CandidateID, reqID: ev.ReqID}
		switch {
		case ev.EventType == startType:
			if _, seen := starts[key]; !seen {
				if _, seenEnd := ends[key]; !seenEnd {
					keyOrder = append(keyOrder, key)
				}
			}
			starts[key] = append(starts[key], ev)
		case endSet[ev.EventType]:
			if _, seen := ends[key]; !seen {
				if _, seenStart := starts[key]; !seenStart {
					keyOrder = append(keyOrder, key)
				}
			}
			ends[key] = append(ends[key], ev)
		}
	}

	var observations []Observation
	for _, key := range keyOrder {
		ss := starts[key]
		if len(ss) == 0 {
			continue
		}
		es := ends[key]
		sort.SliceStable(ss, func(i, j int) bool { return ss[i].EventAt.Before(ss[j].EventAt) })
		sort.SliceStable(es, func(i, j int) bool { return es[i].EventAt.Before(es[j].EventAt) })

		// Greedy two-pointer match: starts in order each take the earliest
		// unconsumed end that is strictly later.
		endIdx := 0
		for _, start := range ss {
			obs := Observation{
				CandidateID: key.candidateID,
				ReqID:       key.reqID,
				StartAt:     start.EventAt,
			}
			for endIdx < len(es) && !es[endIdx].EventAt.After(start.EventAt) {
				endIdx++
			}
			if endIdx < len(es) {
				at := es[endIdx].EventAt
				obs.EndAt = &at
				endIdx++
			}
			observations = append(observations, obs)
		}
	}
	return observations
}

// OpenObservations filters the open (unterminated) observations.
func OpenObservations(observations []Observation) []Observation {
	var open []Observation
	for _, o := range observations {
		if !o.Closed() {
			open = append(open, o)
		}
	}
	return open
}
