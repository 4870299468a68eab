package types

// LatencyStats summarizes a set of right-censored interval observations.
// Percentiles cover only the closed observations; OpenItems counts starts
// whose end event has not occurred yet and is never folded into the
// percentile math. All numeric fields are nil when SampleSize is zero.
type LatencyStats struct {
	Median     *float64 `json:"median"`
	P75        *float64 `json:"p75"`
	P90        *float64 `json:"p90"`
	Max        *float64 `json:"max"`
	SampleSize int      `json:"sample_size"`
	OpenItems  int      `json:"open_items"`
}

// LatencyMetrics groups the three HM-owned latencies tracked per hiring
// manager.
type LatencyMetrics struct {
	Feedback LatencyStats `json:"feedback"`
	Review   LatencyStats `json:"review"`
	Decision LatencyStats `json:"decision"`
}
