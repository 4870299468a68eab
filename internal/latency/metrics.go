package latency

import "github.com/jonathan/hm-insights/internal/types"

// The three HM-owned latencies and their event pairs:
//
//	feedback: INTERVIEW_COMPLETED → FEEDBACK_SUBMITTED
//	review:   SCREEN_COMPLETED   → INTERVIEW_SCHEDULED
//	decision: FEEDBACK_SUBMITTED → OFFER_EXTENDED

// FeedbackObservations pairs completed interviews with later feedback
// submissions.
func FeedbackObservations(events []types.EventFact) []Observation {
	return PairIntervals(events, types.EventInterviewCompleted, types.EventFeedbackSubmitted)
}

// ReviewObservations pairs completed screens with the interview scheduling
// that ends the HM's review of them.
func ReviewObservations(events []types.EventFact) []Observation {
	return PairIntervals(events, types.EventScreenCompleted, types.EventInterviewScheduled)
}

// DecisionObservations pairs submitted feedback with the offer decision
// that follows it.
func DecisionObservations(events []types.EventFact) []Observation {
	return PairIntervals(events, types.EventFeedbackSubmitted, types.EventOfferExtended)
}

// ComputeMetrics computes all three latency stats over one event set
// (typically the events of a single hiring manager's requisitions).
func ComputeMetrics(events []types.EventFact) (types.LatencyMetrics, error) {
	feedback, err := Compute(FeedbackObservations(events))
	if err != nil {
		return types.LatencyMetrics{}, err
	}
	review, err := Compute(ReviewObservations(events))
	if err != nil {
		return types.LatencyMetrics{}, err
	}
	decision, err := Compute(DecisionObservations(events))
	if err != nil {
		return types.LatencyMetrics{}, err
	}
	return types.LatencyMetrics{Feedback: feedback, Review: review, Decision: decision}, nil
}
